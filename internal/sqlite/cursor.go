package sqlite

import (
	"database/sql"
	"sync"
	"sync/atomic"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

var _ types.Cursor = (*cursor)(nil)

// cursor adapts *sql.Rows to types.Cursor. It is registered with the
// backend while open so that Detach can release it.
type cursor struct {
	backend *Backend
	rows    *sql.Rows
	columns []string
	current types.Pet
	err     error

	aborted   atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

func newCursor(b *Backend, rows *sql.Rows, columns []string) *cursor {
	return &cursor{backend: b, rows: rows, columns: columns}
}

// Next advances to the next row.
func (c *cursor) Next() bool {
	if c.err != nil || c.aborted.Load() {
		return false
	}
	if !c.rows.Next() {
		return false
	}
	p, err := scanPet(c.rows, c.columns)
	if err != nil {
		c.err = storageError("scanning pet", err)
		return false
	}
	c.current = p
	return true
}

// Pet returns the current row.
func (c *cursor) Pet() types.Pet {
	return c.current
}

// Columns returns a copy of the projection.
func (c *cursor) Columns() []string {
	out := make([]string, len(c.columns))
	copy(out, c.columns)
	return out
}

// Err reports iteration failures. A cursor released by Detach reports
// ErrDetached.
func (c *cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	if c.aborted.Load() {
		return types.ErrDetached
	}
	if err := c.rows.Err(); err != nil {
		return storageError("iterating pets", err)
	}
	return nil
}

// Close releases the underlying rows. Idempotent.
func (c *cursor) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.rows.Close()
		c.backend.untrackCursor(c)
	})
	return c.closeErr
}

// abort closes a cursor on behalf of Detach.
func (c *cursor) abort() {
	c.aborted.Store(true)
	_ = c.Close()
}
