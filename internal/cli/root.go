// Package cli implements the shelter command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelter/internal/paths"
	"github.com/mesh-intelligence/shelter/pkg/shelter"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks bad flags and arguments.
var errUsage = errors.New("usage")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "shelter" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "shelter",
		Short:   "A local catalog of shelter pets",
		Long:    "Shelter keeps a catalog of pets (name, breed, gender, weight)\nin a local SQLite database.",
		Version: shelter.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd.Name() != "init")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $"+paths.EnvConfigDir+" or the user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newSeedCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status. Rejected input and
// missing pets are user errors; everything else is a system error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUsage),
		errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrNotFound):
		return exitUserError
	default:
		return exitSysError
	}
}

// load reads config.yaml and builds the logger. writeDefault creates a
// default config.yaml when none exists.
func (a *app) load(writeDefault bool) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	v, err := loadConfig(configDir, writeDefault)
	if err != nil {
		return err
	}
	a.config = v

	logger, err := newLogger(v.GetString(cfgKeyLogLevel), a.flags.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("config_file", v.ConfigFileUsed()))
	return nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}
