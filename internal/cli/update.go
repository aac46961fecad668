package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

func newUpdateCmd(a *app) *cobra.Command {
	var f petFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a pet",
		Long: `Update overwrites the fields of a pet given as flags. Fields without a flag
keep their stored value.

Example:
  shelter update 1 --weight 9
  shelter update 1 --name Toto --gender female`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !f.changed(cmd) {
				return fmt.Errorf("%w: no fields to update", errUsage)
			}
			return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
				pet, err := pets.QueryByID(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("get pet %d: %w", id, err)
				}
				draft, err := f.apply(cmd, pet.Draft())
				if err != nil {
					return err
				}
				n, err := pets.Update(cmd.Context(), id, draft)
				if err != nil {
					return fmt.Errorf("update pet %d: %w", id, err)
				}
				if n == 0 {
					return fmt.Errorf("update pet %d: %w", id, types.ErrNotFound)
				}

				if a.flags.jsonMode {
					updated, err := pets.QueryByID(cmd.Context(), id)
					if err != nil {
						return fmt.Errorf("get pet %d: %w", id, err)
					}
					return printJSON(cmd.OutOrStdout(), updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated pet %d\n", id)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}
