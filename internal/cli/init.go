package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir,omitempty"`
	LogLevel      string `yaml:"log_level"`
	JournalMode   string `yaml:"journal_mode"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelter storage",
		Long:  "Create the configuration and data directories, write config.yaml if missing,\nthen create or upgrade the pets database.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	cfg, err := a.backendConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// config.yaml pins data_dir only when --data-dir was given.
	var pinnedDataDir string
	if a.flags.dataDir != "" {
		pinnedDataDir = cfg.DataDir
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, configFile{
		Backend:       cfg.Backend,
		DataDir:       pinnedDataDir,
		LogLevel:      a.config.GetString(cfgKeyLogLevel),
		JournalMode:   cfg.SQLite.GetJournalMode(),
		BusyTimeoutMS: cfg.SQLite.GetBusyTimeoutMS(),
	})
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	backend, err := a.attachBackend()
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	dbPath := backend.Path()
	if err := backend.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"config":         configPath,
			"config_written": written,
			"database":       dbPath,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Shelter initialized at %s\n", dbPath)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
