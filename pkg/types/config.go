package types

import (
	"errors"
	"strings"
)

// Config holds backend selection and parameters for Shelter.Attach.
type Config struct {
	Backend string       `json:"backend" yaml:"backend"`
	DataDir string       `json:"data_dir" yaml:"data_dir"`
	SQLite  SQLiteConfig `json:"sqlite" yaml:"sqlite"`
}

// SQLiteConfig holds SQLite connection tuning. Zero values select defaults.
type SQLiteConfig struct {
	JournalMode   string `json:"journal_mode" yaml:"journal_mode"`
	BusyTimeoutMS int    `json:"busy_timeout_ms" yaml:"busy_timeout_ms"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// SQLite journal modes accepted by SQLiteConfig.
const (
	JournalWAL      = "wal"
	JournalDelete   = "delete"
	JournalTruncate = "truncate"
	JournalMemory   = "memory"
)

// SQLite defaults.
const (
	DefaultJournalMode   = JournalWAL
	DefaultBusyTimeoutMS = 5000
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrJournalModeUnknown  = errors.New("unknown journal mode")
	ErrBusyTimeoutNegative = errors.New("busy timeout must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownJournalModes = map[string]bool{
	JournalWAL:      true,
	JournalDelete:   true,
	JournalTruncate: true,
	JournalMemory:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return c.SQLite.Validate()
}

// Validate checks the SQLite tuning values.
func (s SQLiteConfig) Validate() error {
	if s.JournalMode != "" && !knownJournalModes[strings.ToLower(s.JournalMode)] {
		return ErrJournalModeUnknown
	}
	if s.BusyTimeoutMS < 0 {
		return ErrBusyTimeoutNegative
	}
	return nil
}

// GetJournalMode returns the configured journal mode or DefaultJournalMode.
func (s SQLiteConfig) GetJournalMode() string {
	if s.JournalMode == "" {
		return DefaultJournalMode
	}
	return strings.ToLower(s.JournalMode)
}

// GetBusyTimeoutMS returns the configured busy timeout or DefaultBusyTimeoutMS.
func (s SQLiteConfig) GetBusyTimeoutMS() int {
	if s.BusyTimeoutMS == 0 {
		return DefaultBusyTimeoutMS
	}
	return s.BusyTimeoutMS
}
