package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// storageError wraps an engine error so that it matches types.ErrStorage
// and still exposes the driver error. Context cancellation is passed through
// without the storage kind.
func storageError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, types.ErrStorage, err)
}

// migrationError wraps a failed schema step so that it matches
// types.ErrMigration.
func migrationError(version int, err error) error {
	return fmt.Errorf("migrating schema to version %d: %w: %w", version, types.ErrMigration, err)
}
