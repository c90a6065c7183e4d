// Package grid maps a live object's position onto the cell of a declarative
// grid arrangement. Resolution is pure arithmetic over parameters captured as
// raw source text; values that are not numeric literals simply disable
// resolution, the engine never evaluates source.
package grid

import (
	"math"
	"strconv"
	"strings"
)

// Params holds the arrangement parameters relevant to cell resolution. A nil
// field means the keyword was absent or its raw text was not a numeric
// literal.
type Params struct {
	Rows     *float64
	Cols     *float64
	StartX   *float64
	StartY   *float64
	SpacingX *float64
	SpacingY *float64
}

// Cell addresses one grid slot.
type Cell struct {
	Row int
	Col int
}

// ParseParams interprets raw keyword-argument text as arrangement parameters.
func ParseParams(kwargs map[string]string) Params {
	return Params{
		Rows:     parseNumber(kwargs["rows"]),
		Cols:     parseNumber(kwargs["cols"]),
		StartX:   parseNumber(kwargs["startX"]),
		StartY:   parseNumber(kwargs["startY"]),
		SpacingX: parseNumber(kwargs["spacingX"]),
		SpacingY: parseNumber(kwargs["spacingY"]),
	}
}

// Resolve maps a position to a clamped grid cell. It returns false when any
// required parameter is missing or either spacing is zero; the caller skips
// override computation entirely rather than guessing.
func Resolve(p Params, x, y float64) (Cell, bool) {
	if p.Rows == nil || p.Cols == nil || p.StartX == nil || p.StartY == nil ||
		p.SpacingX == nil || p.SpacingY == nil {
		return Cell{}, false
	}
	if *p.SpacingX == 0 || *p.SpacingY == 0 {
		return Cell{}, false
	}
	// Half-to-even rounding keeps a sprite sitting exactly between two
	// cells in the lower cell, matching the library's runtime rounding.
	col := int(math.RoundToEven((x - *p.StartX) / *p.SpacingX))
	row := int(math.RoundToEven((y - *p.StartY) / *p.SpacingY))
	return Cell{
		Row: clamp(row, 0, int(*p.Rows)-1),
		Col: clamp(col, 0, int(*p.Cols)-1),
	}, true
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// parseNumber best-effort parses a numeric literal, nil for anything else.
func parseNumber(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
