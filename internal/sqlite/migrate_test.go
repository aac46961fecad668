package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// withMigrations replaces the schema history for one test.
func withMigrations(t *testing.T, extra ...migration) {
	t.Helper()
	saved := migrations
	migrations = append(append([]migration{}, saved...), extra...)
	t.Cleanup(func() { migrations = saved })
}

func columnCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	rows, err := db.Query("PRAGMA table_info(" + types.PetsTable + ")")
	require.NoError(t, err)
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	require.NoError(t, rows.Err())
	return n
}

func TestOpenCreatesSchema(t *testing.T) {
	dir := t.TempDir()
	b := attachAt(t, dir)
	require.NoError(t, b.Detach())

	db := rawDB(t, dir)
	assert.Equal(t, 1, userVersion(t, db))
	assert.Equal(t, len(types.AllColumns), columnCount(t, db))
}

func TestOpenKeepsLegacyTable(t *testing.T) {
	// A database written before schema versioning: the table exists but
	// user_version is still 0.
	dir := t.TempDir()
	db := rawDB(t, dir)
	_, err := db.Exec(`CREATE TABLE pets (
		_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		breed TEXT,
		gender INTEGER NOT NULL,
		weight INTEGER NOT NULL DEFAULT 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO pets (name, breed, gender) VALUES ('Binx', NULL, 2)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	b := attachAt(t, dir)
	got, err := petsOf(t, b).QueryByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, types.Pet{ID: 1, Name: "Binx", Gender: types.GenderFemale}, *got)

	require.NoError(t, b.Detach())
	assert.Equal(t, 1, userVersion(t, rawDB(t, dir)))
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	dir := t.TempDir()
	db := rawDB(t, dir)
	_, err := db.Exec("PRAGMA user_version = 9")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	b := NewBackend()
	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrMigration)

	_, err = b.Pets()
	assert.ErrorIs(t, err, types.ErrDetached, "a failed attach leaves the backend detached")
}

func TestUpgradePreservesRows(t *testing.T) {
	dir := t.TempDir()
	b := attachAt(t, dir)
	id, err := petsOf(t, b).Insert(context.Background(), types.PetDraft{Name: "Toto", Breed: "Terrier", Gender: types.GenderMale, Weight: 7})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	withMigrations(t, migration{
		version: 2,
		name:    "add microchip column",
		apply: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "ALTER TABLE pets ADD COLUMN microchip TEXT")
			return err
		},
	})

	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	got, err := petsOf(t, b).QueryByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.Pet{ID: id, Name: "Toto", Breed: "Terrier", Gender: types.GenderMale, Weight: 7}, *got)
	require.NoError(t, b.Detach())

	db := rawDB(t, dir)
	assert.Equal(t, 2, userVersion(t, db))
	assert.Equal(t, len(types.AllColumns)+1, columnCount(t, db))
}

func TestUpgradeFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	b := attachAt(t, dir)
	_, err := petsOf(t, b).Insert(context.Background(), types.PetDraft{Name: "Toto"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	boom := errors.New("boom")
	withMigrations(t, migration{
		version: 2,
		name:    "half-applied step",
		apply: func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "ALTER TABLE pets ADD COLUMN microchip TEXT"); err != nil {
				return err
			}
			return boom
		},
	})

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMigration)
	assert.ErrorIs(t, err, boom)

	db := rawDB(t, dir)
	assert.Equal(t, 1, userVersion(t, db))
	assert.Equal(t, len(types.AllColumns), columnCount(t, db), "partial step must be rolled back")

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM pets").Scan(&n))
	assert.Equal(t, 1, n)
}
