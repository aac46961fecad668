package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every pet to a JSONL file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPets(func(backend *sqlite.Backend, _ types.PetTable) error {
				n, err := backend.ExportJSONL(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				return a.reportTransfer(cmd, "Exported %d pet(s) to %s\n", n, args[0])
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add the pets of a JSONL file",
		Long: `Import inserts every pet of a JSONL file written by export. Imported pets
get new ids. One invalid record rejects the whole file.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPets(func(backend *sqlite.Backend, _ types.PetTable) error {
				n, err := backend.ImportJSONL(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("import: %w", err)
				}
				return a.reportTransfer(cmd, "Imported %d pet(s) from %s\n", n, args[0])
			})
		},
	}
}

func (a *app) reportTransfer(cmd *cobra.Command, format string, n int, path string) error {
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]any{"count": n, "file": path})
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, n, path)
	return nil
}
