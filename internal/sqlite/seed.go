// This file implements sample data seeding.
package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// SamplePet is the placeholder pet the catalog inserts on request.
var SamplePet = types.PetDraft{
	Name:   "Toto",
	Breed:  "Terrier",
	Gender: types.GenderMale,
	Weight: 7,
}

// Seed inserts SamplePet count times and returns the new ids.
func Seed(ctx context.Context, pets types.PetTable, count int) ([]int64, error) {
	if count < 1 {
		count = 1
	}
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		id, err := pets.Insert(ctx, SamplePet)
		if err != nil {
			return ids, fmt.Errorf("seeding sample pet: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
