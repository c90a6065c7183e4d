package graph

import (
	"fmt"
	"strings"
)

// OverrideRecord is one per-cell exception to a declarative grid layout,
// stored in source as a dict literal {"row": R, "col": C, "x": X, "y": Y}.
// A nil field means the source text for that field was not an integer
// literal; readers keep it as null rather than failing.
type OverrideRecord struct {
	Row *int `yaml:"row"`
	Col *int `yaml:"col"`
	X   *int `yaml:"x"`
	Y   *int `yaml:"y"`
}

// NewOverrideRecord builds a fully populated record.
func NewOverrideRecord(row, col, x, y int) OverrideRecord {
	return OverrideRecord{Row: Int(row), Col: Int(col), X: Int(x), Y: Int(y)}
}

// Matches reports whether the record addresses the given cell. Records with
// unparseable row or col never match.
func (r OverrideRecord) Matches(row, col int) bool {
	return r.Row != nil && r.Col != nil && *r.Row == row && *r.Col == col
}

// Source renders the record as the dict literal written back to scene files.
func (r OverrideRecord) Source() string {
	var builder strings.Builder
	builder.WriteString("{")
	fields := []struct {
		key   string
		value *int
	}{
		{"row", r.Row},
		{"col", r.Col},
		{"x", r.X},
		{"y", r.Y},
	}
	for i, field := range fields {
		if i > 0 {
			builder.WriteString(", ")
		}
		if field.value == nil {
			fmt.Fprintf(&builder, "%q: None", field.key)
			continue
		}
		fmt.Fprintf(&builder, "%q: %d", field.key, *field.value)
	}
	builder.WriteString("}")
	return builder.String()
}

// OverrideEntry pairs a parsed record with its span in the scanned file.
type OverrideEntry struct {
	Record   OverrideRecord `yaml:"record"`
	Location Location       `yaml:"location"`
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
