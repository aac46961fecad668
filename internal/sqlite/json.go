// JSON record structure for pets JSONL files.
package sqlite

import "github.com/mesh-intelligence/shelter/pkg/types"

// petRecord is one line of a pets JSONL file. Keys mirror the table
// columns, and gender is stored as its integer code.
type petRecord struct {
	ID     int64  `json:"_id,omitempty"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Gender int    `json:"gender"`
	Weight int    `json:"weight"`
}

func recordFromPet(p types.Pet) petRecord {
	return petRecord{
		ID:     p.ID,
		Name:   p.Name,
		Breed:  p.Breed,
		Gender: int(p.Gender),
		Weight: p.Weight,
	}
}

// draft returns the insertable values of the record. The id is not kept:
// imported pets get new ids.
func (r petRecord) draft() types.PetDraft {
	return types.PetDraft{
		Name:   r.Name,
		Breed:  r.Breed,
		Gender: types.Gender(r.Gender),
		Weight: r.Weight,
	}
}
