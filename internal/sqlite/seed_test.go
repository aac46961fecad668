package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

func TestSeed(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "single sample pet", count: 1, want: 1},
		{name: "several sample pets", count: 3, want: 3},
		{name: "non-positive count seeds one", count: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			pets := petsOf(t, setupBackend(t))

			ids, err := Seed(ctx, pets, tt.count)
			require.NoError(t, err)
			assert.Len(t, ids, tt.want)

			for _, id := range ids {
				got, err := pets.QueryByID(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, SamplePet, got.Draft())
			}
		})
	}
}

func TestSeedDetached(t *testing.T) {
	b := setupBackend(t)
	pets := petsOf(t, b)
	require.NoError(t, b.Detach())

	ids, err := Seed(context.Background(), pets, 2)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.Empty(t, ids)
}
