package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// columnHeaders maps column names to table headers.
var columnHeaders = map[string]string{
	types.ColumnID:     "ID",
	types.ColumnName:   "NAME",
	types.ColumnBreed:  "BREED",
	types.ColumnGender: "GENDER",
	types.ColumnWeight: "WEIGHT",
}

// jsonKeys maps column names to the keys used in JSON output.
var jsonKeys = map[string]string{
	types.ColumnID:     "id",
	types.ColumnName:   "name",
	types.ColumnBreed:  "breed",
	types.ColumnGender: "gender",
	types.ColumnWeight: "weight",
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// fieldValue returns the value of one column of a pet.
func fieldValue(p types.Pet, column string) any {
	switch column {
	case types.ColumnID:
		return p.ID
	case types.ColumnName:
		return p.Name
	case types.ColumnBreed:
		return p.Breed
	case types.ColumnGender:
		return p.Gender.String()
	case types.ColumnWeight:
		return p.Weight
	}
	return nil
}

// projectPet keeps only the projected columns of a pet for JSON output.
func projectPet(p types.Pet, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, c := range columns {
		out[jsonKeys[c]] = fieldValue(p, c)
	}
	return out
}

// printPets writes pets as an aligned table of the projected columns.
func printPets(w io.Writer, pets []types.Pet, columns []string) {
	if len(pets) == 0 {
		fmt.Fprintln(w, "No pets found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	headers := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = columnHeaders[c]
		rules[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, p := range pets {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = fmt.Sprint(fieldValue(p, c))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d pet(s)\n", len(pets))
}

// parseID parses a pet id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}
