package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a PetTable matches at most one of
// these with errors.Is, so callers can tell a rejected draft from a missing
// row from an engine failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("pet not found")
	ErrStorage    = errors.New("storage failure")
	ErrMigration  = errors.New("schema migration failed")
)

// Validation errors. Each wraps ErrValidation.
var (
	ErrInvalidName   = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrInvalidGender = fmt.Errorf("%w: invalid gender", ErrValidation)
	ErrInvalidWeight = fmt.Errorf("%w: weight must not be negative", ErrValidation)
	ErrInvalidColumn = fmt.Errorf("%w: unknown column", ErrValidation)
	ErrInvalidID     = fmt.Errorf("%w: id must be positive", ErrValidation)
)

// Lifecycle errors.
var (
	ErrDetached        = errors.New("shelter is detached")
	ErrAlreadyAttached = errors.New("shelter is already attached")
)
