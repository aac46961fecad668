// Package paths resolves configuration and data directory locations for the
// shelter CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration subdirectory.
const appName = "shelter"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".shelter"
	DefaultDataDirName   = ".shelter-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHELTER_CONFIG_DIR"
	EnvDataDir   = "SHELTER_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/shelter (fallback ~/.config/shelter)
// macOS:   ~/Library/Application Support/shelter
// Windows: %APPDATA%/shelter
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHELTER_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config data_dir > SHELTER_DATA_DIR env > $(CWD)/.shelter-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
