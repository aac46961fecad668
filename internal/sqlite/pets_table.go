// This file implements the pets table accessor for the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// Compile-time interface check: petsTable must implement PetTable.
var _ types.PetTable = (*petsTable)(nil)

// petsTable implements the PetTable interface. Each operation translates
// between SQLite rows and types.Pet values and runs as its own implicit
// transaction on the backend's shared handle.
type petsTable struct {
	backend *Backend
}

// Insert validates the draft, writes it with defaults for unset fields, and
// returns the id assigned by SQLite. Nothing is written when validation
// fails.
func (pt *petsTable) Insert(ctx context.Context, draft types.PetDraft) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}
	draft = draft.Normalized()

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, insertPetSQL, draft.Name, draft.Breed, int(draft.Gender), draft.Weight)
	if err != nil {
		return 0, storageError("inserting pet", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("reading inserted pet id", err)
	}

	pt.backend.logger.Debug("pet inserted", zap.Int64("id", id), zap.String("name", draft.Name))
	pt.backend.observers.publish(types.Change{Op: types.ChangeInsert, ID: id, Rows: 1})
	return id, nil
}

// QueryAll returns a cursor over all pets ordered by id.
func (pt *petsTable) QueryAll(ctx context.Context, columns ...string) (types.Cursor, error) {
	projection, err := types.Projection(columns)
	if err != nil {
		return nil, err
	}

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectPetsSQL(projection, false))
	if err != nil {
		return nil, storageError("querying pets", err)
	}

	c := newCursor(pt.backend, rows, projection)
	pt.backend.trackCursor(c)
	return c, nil
}

// QueryByID returns the pet with the given id, or ErrNotFound.
func (pt *petsTable) QueryByID(ctx context.Context, id int64, columns ...string) (*types.Pet, error) {
	projection, err := types.Projection(columns)
	if err != nil {
		return nil, err
	}

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, types.ErrNotFound
	}

	row := db.QueryRowContext(ctx, selectPetsSQL(projection, true), id)
	pet, err := scanPet(row, projection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, storageError(fmt.Sprintf("getting pet %d", id), err)
	}
	return &pet, nil
}

// Update overwrites every field of the pet with the given id. The gender
// code of the draft is written as given. Returns 0 when no row matched.
func (pt *petsTable) Update(ctx context.Context, id int64, draft types.PetDraft) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}
	draft = draft.Normalized()

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, nil
	}

	res, err := db.ExecContext(ctx, updatePetSQL, draft.Name, draft.Breed, int(draft.Gender), draft.Weight, id)
	if err != nil {
		return 0, storageError(fmt.Sprintf("updating pet %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError(fmt.Sprintf("updating pet %d", id), err)
	}

	pt.backend.logger.Debug("pet updated", zap.Int64("id", id), zap.Int64("rows", n))
	if n > 0 {
		pt.backend.observers.publish(types.Change{Op: types.ChangeUpdate, ID: id, Rows: n})
	}
	return n, nil
}

// Delete removes the pet with the given id, or returns ErrNotFound.
func (pt *petsTable) Delete(ctx context.Context, id int64) error {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrNotFound
	}

	res, err := db.ExecContext(ctx, deletePetSQL, id)
	if err != nil {
		return storageError(fmt.Sprintf("deleting pet %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError(fmt.Sprintf("deleting pet %d", id), err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	pt.backend.logger.Debug("pet deleted", zap.Int64("id", id))
	pt.backend.observers.publish(types.Change{Op: types.ChangeDelete, ID: id, Rows: n})
	return nil
}

// DeleteAll removes every pet and returns the number removed.
func (pt *petsTable) DeleteAll(ctx context.Context) (int64, error) {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, deleteAllPetsSQL)
	if err != nil {
		return 0, storageError("deleting all pets", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError("deleting all pets", err)
	}

	pt.backend.logger.Debug("pets deleted", zap.Int64("rows", n))
	if n > 0 {
		pt.backend.observers.publish(types.Change{Op: types.ChangeDeleteAll, Rows: n})
	}
	return n, nil
}

// Count returns the number of pets.
func (pt *petsTable) Count(ctx context.Context) (int64, error) {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	db, err := pt.backend.handle()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.QueryRowContext(ctx, countPetsSQL).Scan(&n); err != nil {
		return 0, storageError("counting pets", err)
	}
	return n, nil
}

// LoadAll collects QueryAll on a background goroutine.
func (pt *petsTable) LoadAll(ctx context.Context, columns ...string) types.Future[[]types.Pet] {
	return startFuture(ctx, func(ctx context.Context) ([]types.Pet, error) {
		c, err := pt.QueryAll(ctx, columns...)
		if err != nil {
			return nil, err
		}
		defer c.Close()

		pets := make([]types.Pet, 0)
		for c.Next() {
			pets = append(pets, c.Pet())
		}
		if err := c.Err(); err != nil {
			return nil, err
		}
		return pets, nil
	})
}

// LoadByID runs QueryByID on a background goroutine.
func (pt *petsTable) LoadByID(ctx context.Context, id int64, columns ...string) types.Future[*types.Pet] {
	return startFuture(ctx, func(ctx context.Context) (*types.Pet, error) {
		return pt.QueryByID(ctx, id, columns...)
	})
}

// Subscribe registers an observer of table changes.
func (pt *petsTable) Subscribe() *types.Subscription {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	return pt.backend.observers.subscribe()
}

// selectPetsSQL builds a projected SELECT, optionally keyed by id.
func selectPetsSQL(projection []string, byID bool) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(projection, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(types.PetsTable)
	if byID {
		sb.WriteString(" WHERE ")
		sb.WriteString(types.ColumnID)
		sb.WriteString(" = ?")
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(types.ColumnID)
	return sb.String()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPet hydrates the projected columns of one row into a Pet. A stored
// gender code outside the known values is an error; callers report it as a
// storage failure.
func scanPet(s rowScanner, projection []string) (types.Pet, error) {
	var (
		p      types.Pet
		breed  sql.NullString
		gender int64
	)
	dest := make([]any, len(projection))
	for i, col := range projection {
		switch col {
		case types.ColumnID:
			dest[i] = &p.ID
		case types.ColumnName:
			dest[i] = &p.Name
		case types.ColumnBreed:
			dest[i] = &breed
		case types.ColumnGender:
			dest[i] = &gender
		case types.ColumnWeight:
			dest[i] = &p.Weight
		default:
			return p, types.ErrInvalidColumn
		}
	}
	if err := s.Scan(dest...); err != nil {
		return p, err
	}
	p.Breed = breed.String
	p.Gender = types.Gender(gender)
	if !p.Gender.Valid() {
		return p, fmt.Errorf("pet %d has unknown gender code %d", p.ID, gender)
	}
	return p, nil
}
