package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

func newSeedCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample pets",
		Long: fmt.Sprintf(`Seed inserts the sample pet (%s, %s, %s, %d) --count times.`,
			sqlite.SamplePet.Name, sqlite.SamplePet.Breed, sqlite.SamplePet.Gender, sqlite.SamplePet.Weight),
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
				ids, err := sqlite.Seed(cmd.Context(), pets, count)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string][]int64{"ids": ids})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d pet(s)\n", len(ids))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of sample pets")
	return cmd
}
