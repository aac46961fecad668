package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

// petFlags holds the editable pet fields given on the command line.
type petFlags struct {
	name   string
	breed  string
	gender string
	weight int
}

func (f *petFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "pet name")
	cmd.Flags().StringVar(&f.breed, "breed", "", "breed")
	cmd.Flags().StringVar(&f.gender, "gender", types.GenderUnknown.String(), "gender: unknown, male, female or 0, 1, 2")
	cmd.Flags().IntVar(&f.weight, "weight", 0, "weight")
}

// changed reports whether any pet field flag was given.
func (f *petFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"name", "breed", "gender", "weight"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply overwrites the fields of d whose flags were given.
func (f *petFlags) apply(cmd *cobra.Command, d types.PetDraft) (types.PetDraft, error) {
	if cmd.Flags().Changed("name") {
		d.Name = f.name
	}
	if cmd.Flags().Changed("breed") {
		d.Breed = f.breed
	}
	if cmd.Flags().Changed("gender") {
		g, err := types.ParseGender(f.gender)
		if err != nil {
			return d, err
		}
		d.Gender = g
	}
	if cmd.Flags().Changed("weight") {
		d.Weight = f.weight
	}
	return d, nil
}

func newAddCmd(a *app) *cobra.Command {
	var f petFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pet to the catalog",
		Long: `Add inserts a new pet. --name is required; breed, gender and weight are optional and
default to empty, unknown and 0.

Example:
  shelter add --name Toto --breed Terrier --gender male --weight 7
  shelter add --name Binx --json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := f.apply(cmd, types.PetDraft{})
			if err != nil {
				return err
			}
			return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
				id, err := pets.Insert(cmd.Context(), draft)
				if err != nil {
					return fmt.Errorf("add pet: %w", err)
				}
				if !a.flags.jsonMode {
					fmt.Fprintf(cmd.OutOrStdout(), "Added pet %d\n", id)
					return nil
				}
				pet, err := pets.QueryByID(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("get pet %d: %w", id, err)
				}
				return printJSON(cmd.OutOrStdout(), pet)
			})
		},
	}
	f.register(cmd)
	return cmd
}
