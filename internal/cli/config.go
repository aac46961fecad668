package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/shelter/internal/paths"
	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyJournalMode = "journal_mode"
	cfgKeyBusyTimeout = "busy_timeout_ms"

	defaultLogLevel = "warn"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Shelter CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Log level: debug, info, warn, error
log_level: warn

# SQLite tuning
journal_mode: wal
busy_timeout_ms: 5000
`

// loadConfig reads config.yaml from configDir using Viper. With
// writeDefault it creates the directory and a default file on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string, writeDefault bool) (*viper.Viper, error) {
	if writeDefault {
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure config dir: %w", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return nil, fmt.Errorf("ensure default config: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyJournalMode, types.DefaultJournalMode)
	v.SetDefault(cfgKeyBusyTimeout, types.DefaultBusyTimeoutMS)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// newLogger builds a production zap logger on stderr. verbose forces the
// debug level.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", cfgKeyLogLevel, level, err)
		}
		config.Level = lvl
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

// backendConfig resolves the data directory and builds the attach config.
func (a *app) backendConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
		SQLite: types.SQLiteConfig{
			JournalMode:   a.config.GetString(cfgKeyJournalMode),
			BusyTimeoutMS: a.config.GetInt(cfgKeyBusyTimeout),
		},
	}, nil
}

// attachBackend creates a SQLite backend and attaches it. The caller must
// defer backend.Detach().
func (a *app) attachBackend() (*sqlite.Backend, error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return nil, err
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return backend, nil
}

// withPets attaches the backend for the duration of fn.
func (a *app) withPets(fn func(backend *sqlite.Backend, pets types.PetTable) error) error {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	pets, err := backend.Pets()
	if err != nil {
		return err
	}
	return fn(backend, pets)
}
