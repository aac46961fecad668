package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/shelter/pkg/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

func TestNewBackend(t *testing.T) {
	ctx := context.Background()
	s := sqlite.NewBackend(sqlite.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer s.Detach()

	pets, err := s.Pets()
	require.NoError(t, err)

	id, err := pets.Insert(ctx, types.PetDraft{Name: "Toto", Breed: "Terrier", Gender: types.GenderMale, Weight: 7})
	require.NoError(t, err)

	got, err := pets.LoadByID(ctx, id).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Pet{ID: id, Name: "Toto", Breed: "Terrier", Gender: types.GenderMale, Weight: 7}, *got)
}
