package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pets",
		Long: `List prints every pet ordered by id.

Use --columns to choose the columns shown (_id, name, breed, gender, weight).

Example:
  shelter list
  shelter list --columns _id,name
  shelter list --json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
				c, err := pets.QueryAll(cmd.Context(), columns...)
				if err != nil {
					return fmt.Errorf("list pets: %w", err)
				}
				defer c.Close()

				var all []types.Pet
				for c.Next() {
					all = append(all, c.Pet())
				}
				if err := c.Err(); err != nil {
					return fmt.Errorf("list pets: %w", err)
				}

				if a.flags.jsonMode {
					out := make([]map[string]any, 0, len(all))
					for _, p := range all {
						out = append(out, projectPet(p, c.Columns()))
					}
					return printJSON(cmd.OutOrStdout(), out)
				}
				printPets(cmd.OutOrStdout(), all, c.Columns())
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to show (default: all)")
	return cmd
}
