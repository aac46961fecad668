package types

// Pets table name and column names. Column names match the on-disk layout
// of existing catalog databases, including the "_id" key column.
const (
	PetsTable = "pets"

	ColumnID     = "_id"
	ColumnName   = "name"
	ColumnBreed  = "breed"
	ColumnGender = "gender"
	ColumnWeight = "weight"
)

// AllColumns lists the pets columns in storage order. A projection that
// names no columns selects all of them.
var AllColumns = []string{
	ColumnID,
	ColumnName,
	ColumnBreed,
	ColumnGender,
	ColumnWeight,
}

// validColumns is the set of recognized column names.
var validColumns = map[string]bool{
	ColumnID:     true,
	ColumnName:   true,
	ColumnBreed:  true,
	ColumnGender: true,
	ColumnWeight: true,
}

// ValidColumn reports whether name is a pets column.
func ValidColumn(name string) bool {
	return validColumns[name]
}

// Projection validates columns and returns the projection to use. An empty
// list selects AllColumns. Duplicates are removed, preserving first
// occurrence. Returns ErrInvalidColumn for an unknown name.
func Projection(columns []string) ([]string, error) {
	if len(columns) == 0 {
		out := make([]string, len(AllColumns))
		copy(out, AllColumns)
		return out, nil
	}
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !validColumns[c] {
			return nil, ErrInvalidColumn
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}
