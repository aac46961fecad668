package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// setupBackend attaches a Backend to a fresh temp data directory and
// detaches it when the test ends.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	return attachAt(t, t.TempDir())
}

func attachAt(t *testing.T, dataDir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func petsOf(t *testing.T, b *Backend) types.PetTable {
	t.Helper()
	pets, err := b.Pets()
	require.NoError(t, err)
	return pets
}

// rawDB opens the database file directly, bypassing the backend.
func rawDB(t *testing.T, dataDir string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func userVersion(t *testing.T, db *sql.DB) int {
	t.Helper()
	v, err := schemaVersion(context.Background(), db)
	require.NoError(t, err)
	return v
}

func TestBackendLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "attach creates data dir and database file",
			check: func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), "nested", "data")
				b := attachAt(t, dir)
				assert.FileExists(t, filepath.Join(dir, DatabaseFile))
				assert.Equal(t, filepath.Join(dir, DatabaseFile), b.Path())
			},
		},
		{
			name: "attach twice returns ErrAlreadyAttached",
			check: func(t *testing.T) {
				b := setupBackend(t)
				err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
				assert.ErrorIs(t, err, types.ErrAlreadyAttached)
			},
		},
		{
			name: "invalid config is rejected before touching disk",
			check: func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), "never")
				b := NewBackend()
				err := b.Attach(types.Config{Backend: "postgres", DataDir: dir})
				assert.ErrorIs(t, err, types.ErrBackendUnknown)
				assert.NoDirExists(t, dir)
			},
		},
		{
			name: "detach is idempotent",
			check: func(t *testing.T) {
				b := setupBackend(t)
				require.NoError(t, b.Detach())
				require.NoError(t, b.Detach())
			},
		},
		{
			name: "operations after detach return ErrDetached",
			check: func(t *testing.T) {
				b := setupBackend(t)
				pets := petsOf(t, b)
				require.NoError(t, b.Detach())

				_, err := b.Pets()
				assert.ErrorIs(t, err, types.ErrDetached)

				_, err = pets.Insert(context.Background(), types.PetDraft{Name: "Toto"})
				assert.ErrorIs(t, err, types.ErrDetached)
				_, err = pets.QueryAll(context.Background())
				assert.ErrorIs(t, err, types.ErrDetached)
				_, err = pets.DeleteAll(context.Background())
				assert.ErrorIs(t, err, types.ErrDetached)
			},
		},
		{
			name: "rows survive detach and re-attach",
			check: func(t *testing.T) {
				dir := t.TempDir()
				b := attachAt(t, dir)
				id, err := petsOf(t, b).Insert(context.Background(), types.PetDraft{Name: "Toto", Weight: 7})
				require.NoError(t, err)
				require.NoError(t, b.Detach())

				require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
				got, err := petsOf(t, b).QueryByID(context.Background(), id)
				require.NoError(t, err)
				assert.Equal(t, "Toto", got.Name)
				assert.Equal(t, 7, got.Weight)
			},
		},
		{
			name: "data dir with URI delimiters in its name",
			check: func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), "shelter?mode=ro#100%")
				b := attachAt(t, dir)
				_, err := petsOf(t, b).Insert(context.Background(), types.PetDraft{Name: "Toto"})
				require.NoError(t, err)
				require.NoError(t, b.Detach())

				assert.FileExists(t, filepath.Join(dir, DatabaseFile))
				require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
				n, err := petsOf(t, b).Count(context.Background())
				require.NoError(t, err)
				assert.Equal(t, int64(1), n)
			},
		},
		{
			name: "detach releases cursors left open",
			check: func(t *testing.T) {
				b := setupBackend(t)
				pets := petsOf(t, b)
				_, err := pets.Insert(context.Background(), types.PetDraft{Name: "Toto"})
				require.NoError(t, err)

				c, err := pets.QueryAll(context.Background())
				require.NoError(t, err)
				require.NoError(t, b.Detach())

				assert.False(t, c.Next())
				assert.ErrorIs(t, c.Err(), types.ErrDetached)
				assert.NoError(t, c.Close())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.check)
	}
}

func TestJournalMode(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{mode: "", want: "wal"},
		{mode: types.JournalDelete, want: "delete"},
		{mode: "TRUNCATE", want: "truncate"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b := NewBackend()
			require.NoError(t, b.Attach(types.Config{
				Backend: types.BackendSQLite,
				DataDir: t.TempDir(),
				SQLite:  types.SQLiteConfig{JournalMode: tt.mode},
			}))
			t.Cleanup(func() { b.Detach() })

			var got string
			require.NoError(t, b.db.QueryRow("PRAGMA journal_mode").Scan(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetachDuringIteration(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	pets := petsOf(t, b)
	for i := 0; i < 50; i++ {
		_, err := pets.Insert(ctx, types.PetDraft{Name: "Toto"})
		require.NoError(t, err)
	}

	c, err := pets.QueryAll(ctx)
	require.NoError(t, err)

	firstRow := make(chan struct{})
	detached := make(chan struct{})
	result := make(chan error, 1)
	go func() {
		rows := 0
		for c.Next() {
			rows++
			if rows == 1 {
				close(firstRow)
				<-detached
			}
		}
		result <- c.Err()
	}()

	<-firstRow
	require.NoError(t, b.Detach())
	close(detached)

	assert.ErrorIs(t, <-result, types.ErrDetached)
	assert.NoError(t, c.Close())

	_, err = pets.Insert(ctx, types.PetDraft{Name: "Toto"})
	assert.ErrorIs(t, err, types.ErrDetached)
}
