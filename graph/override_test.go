package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/spritesync/graph"
)

func TestOverrideRecord_Source(t *testing.T) {
	tests := []struct {
		description string
		record      graph.OverrideRecord
		want        string
	}{
		{
			description: "full record",
			record:      graph.NewOverrideRecord(1, 0, 50, 150),
			want:        `{"row": 1, "col": 0, "x": 50, "y": 150}`,
		},
		{
			description: "nil fields render as None",
			record:      graph.OverrideRecord{Row: graph.Int(2), X: graph.Int(-5)},
			want:        `{"row": 2, "col": None, "x": -5, "y": None}`,
		},
	}
	for _, testCase := range tests {
		assert.Equal(t, testCase.want, testCase.record.Source(), testCase.description)
	}
}

func TestOverrideRecord_Matches(t *testing.T) {
	record := graph.NewOverrideRecord(1, 0, 50, 150)
	assert.True(t, record.Matches(1, 0))
	assert.False(t, record.Matches(0, 1))

	// A record with an unparseable cell field never matches any cell.
	partial := graph.OverrideRecord{Row: graph.Int(1)}
	assert.False(t, partial.Matches(1, 0))
}
