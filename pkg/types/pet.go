package types

import "strings"

// PetDraft holds the field values of a pet that has not been persisted, or
// the replacement values for an update. The zero values of Gender and Weight
// are the column defaults.
type PetDraft struct {
	Name   string `json:"name"`
	Breed  string `json:"breed,omitempty"`
	Gender Gender `json:"gender"`
	Weight int    `json:"weight"`
}

// Pet is a persisted row of the pets table. Fields outside a query's
// projection are left at their zero value.
type Pet struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Gender Gender `json:"gender"`
	Weight int    `json:"weight"`
}

// Validate checks the draft before any write. Surrounding whitespace does
// not count towards a non-empty name.
func (d PetDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidName
	}
	if !d.Gender.Valid() {
		return ErrInvalidGender
	}
	if d.Weight < 0 {
		return ErrInvalidWeight
	}
	return nil
}

// Normalized returns a copy of the draft with name and breed trimmed.
func (d PetDraft) Normalized() PetDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Breed = strings.TrimSpace(d.Breed)
	return d
}

// Draft returns the editable values of the pet.
func (p Pet) Draft() PetDraft {
	return PetDraft{
		Name:   p.Name,
		Breed:  p.Breed,
		Gender: p.Gender,
		Weight: p.Weight,
	}
}
