package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPetDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   PetDraft
		wantErr error
	}{
		{
			name:  "full draft is valid",
			draft: PetDraft{Name: "Toto", Breed: "Terrier", Gender: GenderMale, Weight: 7},
		},
		{
			name:  "name alone is valid, defaults apply",
			draft: PetDraft{Name: "Binx"},
		},
		{
			name:    "empty name",
			draft:   PetDraft{Name: ""},
			wantErr: ErrInvalidName,
		},
		{
			name:    "whitespace name",
			draft:   PetDraft{Name: "  \t "},
			wantErr: ErrInvalidName,
		},
		{
			name:    "gender outside enumeration",
			draft:   PetDraft{Name: "Rex", Gender: Gender(3)},
			wantErr: ErrInvalidGender,
		},
		{
			name:    "negative weight",
			draft:   PetDraft{Name: "Rex", Weight: -1},
			wantErr: ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation, "every draft rejection is a validation error")
		})
	}
}

func TestPetDraftNormalized(t *testing.T) {
	d := PetDraft{Name: "  Toto ", Breed: " Terrier\n", Gender: GenderMale, Weight: 7}
	got := d.Normalized()

	assert.Equal(t, PetDraft{Name: "Toto", Breed: "Terrier", Gender: GenderMale, Weight: 7}, got)
	assert.Equal(t, "  Toto ", d.Name, "receiver must not be modified")
}

func TestPetDraftRoundTrip(t *testing.T) {
	p := Pet{ID: 4, Name: "Toto", Breed: "Terrier", Gender: GenderMale, Weight: 9}
	assert.Equal(t, PetDraft{Name: "Toto", Breed: "Terrier", Gender: GenderMale, Weight: 9}, p.Draft())
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{ErrValidation, ErrNotFound, ErrStorage, ErrMigration}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
	assert.False(t, errors.Is(ErrInvalidName, ErrNotFound))
}
