package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Gender is the integer-coded gender of a pet as stored in the gender column.
type Gender int

// Gender values. The zero value is GenderUnknown.
const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

var genderNames = map[Gender]string{
	GenderUnknown: "unknown",
	GenderMale:    "male",
	GenderFemale:  "female",
}

// Valid reports whether g is one of the three recognized codes.
func (g Gender) Valid() bool {
	_, ok := genderNames[g]
	return ok
}

// String returns the lower-case name of the gender, or the numeric code for
// an unrecognized value.
func (g Gender) String() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return strconv.Itoa(int(g))
}

// ParseGender accepts a gender name (case-insensitive) or its numeric code.
// Returns ErrInvalidGender for anything else.
func ParseGender(s string) (Gender, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range genderNames {
		if s == name {
			return g, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if g := Gender(n); g.Valid() {
			return g, nil
		}
	}
	return GenderUnknown, fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

// MarshalText encodes the gender as its name.
func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGender, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes a gender name or numeric code.
func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// UnmarshalJSON accepts either a JSON string (name or code) or a JSON number.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Gender(n).Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidGender, n)
		}
		*g = Gender(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGender, data)
	}
	return g.UnmarshalText([]byte(s))
}
