// Package sqlite provides the public API for the SQLite shelter backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithLogger sets the logger used by the backend.
func WithLogger(l *zap.Logger) Option {
	return sqlite.WithLogger(l)
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".shelter-db",
//	})
//	defer backend.Detach()
func NewBackend(opts ...Option) types.Shelter {
	return sqlite.NewBackend(opts...)
}
