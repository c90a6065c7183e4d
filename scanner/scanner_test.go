package scanner_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/spritesync/graph"
	"github.com/viant/spritesync/scanner"
)

func TestScanner_ScanSource_Assignments(t *testing.T) {
	tests := []struct {
		description string
		src         string
		want        []*graph.AssignmentSite
	}{
		{
			description: "basic attribute assignment",
			src:         "player.leftEdge = 40\n",
			want: []*graph.AssignmentSite{
				{
					Line:        1,
					Column:      1,
					Target:      "player",
					Attribute:   graph.AttrLeftEdge,
					Value:       "40",
					Identifiers: []string{"player"},
				},
			},
		},
		{
			description: "dotted base captured verbatim",
			src:         "scene.hero.topEdge = offset + 8\n",
			want: []*graph.AssignmentSite{
				{
					Line:        1,
					Column:      1,
					Target:      "scene.hero",
					Attribute:   graph.AttrTopEdge,
					Value:       "offset + 8",
					Identifiers: []string{"scene", "hero"},
				},
			},
		},
		{
			description: "irrelevant attributes and plain assignments ignored",
			src: `player.name = "hero"
speed = 3
player.centerX = 120
`,
			want: []*graph.AssignmentSite{
				{
					Line:        3,
					Column:      1,
					Target:      "player",
					Attribute:   graph.AttrCenterX,
					Value:       "120",
					Identifiers: []string{"player"},
				},
			},
		},
		{
			description: "indented assignment keeps exact position",
			src:         "def setup():\n    player.leftEdge = 5\n",
			want: []*graph.AssignmentSite{
				{
					Line:        2,
					Column:      5,
					Target:      "player",
					Attribute:   graph.AttrLeftEdge,
					Value:       "5",
					Identifiers: []string{"player"},
				},
			},
		},
	}

	aScanner := scanner.New(nil)
	for _, testCase := range tests {
		result, err := aScanner.ScanSource([]byte(testCase.src))
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		if !assert.Equal(t, len(testCase.want), len(result.Assignments), testCase.description) {
			continue
		}
		for i, want := range testCase.want {
			actual := result.Assignments[i]
			assert.Equal(t, want.Line, actual.Line, testCase.description)
			assert.Equal(t, want.Column, actual.Column, testCase.description)
			assert.Equal(t, want.Target, actual.Target, testCase.description)
			assert.Equal(t, want.Attribute, actual.Attribute, testCase.description)
			assert.Equal(t, want.Value, actual.Value, testCase.description)
			assert.Equal(t, want.Identifiers, actual.Identifiers, testCase.description)
			assert.Equal(t, want.Value, actual.ValueLocation.Slice(result.Source), testCase.description)
		}
	}
}

func TestScanner_ScanSource_Calls(t *testing.T) {
	tests := []struct {
		description     string
		src             string
		wantLines       []int
		wantKwargs      []map[string]string
		wantIdentifiers [][]string
	}{
		{
			description: "free function call with keywords",
			src:         "arrangeGrid(items, rows=2, cols=3)\n",
			wantLines:   []int{1},
			wantKwargs:  []map[string]string{{"rows": "2", "cols": "3"}},
			wantIdentifiers: [][]string{
				{"arrangeGrid", "items", "rows", "cols"},
			},
		},
		{
			description: "method form recognized by final identifier",
			src:         "layout.arrangeGrid(coins, spacingX=64)\n",
			wantLines:   []int{1},
			wantKwargs:  []map[string]string{{"spacingX": "64"}},
			wantIdentifiers: [][]string{
				{"layout", "arrangeGrid", "coins", "spacingX"},
			},
		},
		{
			description: "nested inside another call argument",
			src:         "register(arrangeGrid(items, rows=1))\n",
			wantLines:   []int{1},
			wantKwargs:  []map[string]string{{"rows": "1"}},
			wantIdentifiers: [][]string{
				{"arrangeGrid", "items", "rows"},
			},
		},
		{
			description:     "positional-only call still recognized",
			src:             "arrangeGrid(items, 2, 3)\n",
			wantLines:       []int{1},
			wantKwargs:      []map[string]string{nil},
			wantIdentifiers: [][]string{{"arrangeGrid", "items"}},
		},
		{
			description: "other calls ignored",
			src:         "loadSprites(\"coin.png\")\n",
			wantLines:   nil,
		},
	}

	aScanner := scanner.New(nil)
	for _, testCase := range tests {
		result, err := aScanner.ScanSource([]byte(testCase.src))
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		if !assert.Equal(t, len(testCase.wantLines), len(result.Calls), testCase.description) {
			continue
		}
		for i, line := range testCase.wantLines {
			call := result.Calls[i]
			assert.Equal(t, line, call.Line, testCase.description)
			assert.Equal(t, testCase.wantKwargs[i], call.Kwargs(), testCase.description)
			assert.Equal(t, testCase.wantIdentifiers[i], call.Identifiers, testCase.description)
			assert.Equal(t, call.Text, call.Location.Slice(result.Source), testCase.description)
		}
	}
}

func TestScanner_ScanSource_ParseFailure(t *testing.T) {
	aScanner := scanner.New(nil)
	_, err := aScanner.ScanSource([]byte("player.leftEdge = (\n"))
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, scanner.ErrParse))
}

func TestScanner_ScanFile(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/scanner/scene.py"
	err := fs.Upload(ctx, URL, 0644, strings.NewReader("player.leftEdge = 40\n"))
	assert.Nil(t, err)

	aScanner := scanner.New(nil)
	result, err := aScanner.ScanFile(ctx, URL)
	assert.Nil(t, err)
	assert.Equal(t, URL, result.File)
	if assert.Equal(t, 1, len(result.Assignments)) {
		assert.Equal(t, URL, result.Assignments[0].File)
	}
	assert.NotEqual(t, uint64(0), result.Digest)

	_, err = aScanner.ScanFile(ctx, "mem://localhost/scanner/absent.py")
	assert.NotNil(t, err)
}

func TestScanner_ParseOverrides(t *testing.T) {
	tests := []struct {
		description string
		value       string
		wantOK      bool
		want        []graph.OverrideRecord
	}{
		{
			description: "full records",
			value:       `[{"row": 1, "col": 0, "x": 50, "y": 150}, {"row": 0, "col": 2, "x": 200, "y": 0}]`,
			wantOK:      true,
			want: []graph.OverrideRecord{
				graph.NewOverrideRecord(1, 0, 50, 150),
				graph.NewOverrideRecord(0, 2, 200, 0),
			},
		},
		{
			description: "unparseable fields stay nil",
			value:       `[{"row": 1, "col": width - 1, "x": 50, "y": 150}]`,
			wantOK:      true,
			want: []graph.OverrideRecord{
				{Row: graph.Int(1), X: graph.Int(50), Y: graph.Int(150)},
			},
		},
		{
			description: "negative integers",
			value:       `[{"row": 0, "col": 0, "x": -5, "y": -10}]`,
			wantOK:      true,
			want:        []graph.OverrideRecord{graph.NewOverrideRecord(0, 0, -5, -10)},
		},
		{
			description: "non-record element yields empty record",
			value:       `[spot]`,
			wantOK:      true,
			want:        []graph.OverrideRecord{{}},
		},
		{
			description: "not a list",
			value:       `computeOverrides()`,
			wantOK:      false,
		},
	}

	aScanner := scanner.New(nil)
	for _, testCase := range tests {
		entries, ok := aScanner.ParseOverrides(testCase.value, 0)
		assert.Equal(t, testCase.wantOK, ok, testCase.description)
		if !ok {
			continue
		}
		if !assert.Equal(t, len(testCase.want), len(entries), testCase.description) {
			continue
		}
		for i, want := range testCase.want {
			assert.EqualValues(t, want, entries[i].Record, testCase.description)
		}
	}
}

func TestScanner_ParseOverrides_Offset(t *testing.T) {
	aScanner := scanner.New(nil)
	value := `[{"row": 0, "col": 0, "x": 1, "y": 2}]`
	entries, ok := aScanner.ParseOverrides(value, 100)
	assert.True(t, ok)
	if assert.Equal(t, 1, len(entries)) {
		assert.Equal(t, 101, entries[0].Location.Start)
		assert.Equal(t, 100+len(value)-1, entries[0].Location.End)
	}
}
