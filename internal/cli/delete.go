package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

func newDeleteCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "delete <id> | delete --all",
		Short: "Remove one pet or every pet",
		Example: `  shelter delete 3
  shelter delete --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return exactArgs(0)(cmd, args)
			}
			return exactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
					n, err := pets.DeleteAll(cmd.Context())
					if err != nil {
						return fmt.Errorf("delete pets: %w", err)
					}
					if a.flags.jsonMode {
						return printJSON(cmd.OutOrStdout(), map[string]int64{"deleted": n})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d pet(s)\n", n)
					return nil
				})
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
				if err := pets.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete pet %d: %w", id, err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]int64{"deleted": 1})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted pet %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every pet")
	return cmd
}
