package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

const defaultGetTimeout = 5 * time.Second

func newGetCmd(a *app) *cobra.Command {
	var (
		columns []string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one pet",
		Long: `Get loads the pet with the given id. The load is abandoned after --timeout.

Example:
  shelter get 1
  shelter get 1 --columns name,weight --json`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withPets(func(_ *sqlite.Backend, pets types.PetTable) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()

				load := pets.LoadByID(cmd.Context(), id, columns...)
				pet, err := load.Wait(ctx)
				if err != nil {
					load.Cancel()
					return fmt.Errorf("get pet %d: %w", id, err)
				}

				projection, err := types.Projection(columns)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), projectPet(*pet, projection))
				}
				printPets(cmd.OutOrStdout(), []types.Pet{*pet}, projection)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to show (default: all)")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultGetTimeout, "how long to wait for the pet")
	return cmd
}
