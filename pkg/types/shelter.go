package types

import "context"

// Shelter defines backend-agnostic access to the pet catalog. Callers attach
// to a backend, obtain the pets table, and detach when done.
type Shelter interface {
	// Attach opens the backend described by config, creating the data
	// directory, the database file and the pets table when absent, and
	// upgrading an older schema. Returns ErrAlreadyAttached if called while
	// attached.
	Attach(config Config) error

	// Detach releases backend resources, closing any open cursors and
	// subscriptions. Idempotent. After Detach, table operations return
	// ErrDetached.
	Detach() error

	// Pets returns the record access layer for the pets table.
	Pets() (PetTable, error)
}

// PetTable provides CRUD operations over the pets table. All methods are
// safe for concurrent use.
type PetTable interface {
	// Insert validates the draft and writes a new row. Returns the id
	// assigned by the storage engine.
	Insert(ctx context.Context, draft PetDraft) (int64, error)

	// QueryAll returns a cursor over every row, projected to columns (all
	// columns when none are given), in id order. The caller must Close it.
	QueryAll(ctx context.Context, columns ...string) (Cursor, error)

	// QueryByID returns the row with the given id or ErrNotFound.
	QueryByID(ctx context.Context, id int64, columns ...string) (*Pet, error)

	// Update overwrites name, breed, gender and weight of the row with the
	// given id. Returns the number of rows affected: 0 when no row matched.
	Update(ctx context.Context, id int64, draft PetDraft) (int64, error)

	// Delete removes the row with the given id. Returns ErrNotFound when no
	// row matched.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every row and returns how many were removed. An
	// empty table yields 0 and a nil error.
	DeleteAll(ctx context.Context) (int64, error)

	// Count returns the number of rows.
	Count(ctx context.Context) (int64, error)

	// LoadAll runs QueryAll on a background goroutine and collects the rows.
	LoadAll(ctx context.Context, columns ...string) Future[[]Pet]

	// LoadByID runs QueryByID on a background goroutine.
	LoadByID(ctx context.Context, id int64, columns ...string) Future[*Pet]

	// Subscribe registers an observer of table changes.
	Subscribe() *Subscription
}

// Cursor is a lazy, forward-only, non-restartable sequence of rows. It must
// be released with Close once the caller is done with it.
type Cursor interface {
	// Next advances to the next row, returning false when the rows are
	// exhausted or an error occurred.
	Next() bool

	// Pet returns the current row. Columns outside the projection are zero.
	Pet() Pet

	// Columns returns the projection of this cursor.
	Columns() []string

	// Err returns the error, if any, encountered during iteration.
	Err() error

	// Close releases the cursor. Idempotent.
	Close() error
}

// Future is the pending result of an asynchronous read.
type Future[T any] interface {
	// Done is closed once the result is available.
	Done() <-chan struct{}

	// Wait blocks until the result is available or ctx is done. Giving up
	// on the wait does not cancel the read.
	Wait(ctx context.Context) (T, error)

	// Cancel aborts the read. A cancelled future resolves to
	// context.Canceled unless it had already completed.
	Cancel()
}
