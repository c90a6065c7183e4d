package scanner

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/spritesync/graph"
)

// ParseOverrides parses the raw value of an `overrides` keyword argument as a
// list of per-cell records. Integer fields are parsed where possible and left
// nil otherwise; non-record elements still produce an entry so their span can
// be located. Spans are rebased by offset to be absolute in the scanned file.
func (s *Scanner) ParseOverrides(value string, offset int) ([]graph.OverrideEntry, bool) {
	root, err := s.parse([]byte(value))
	if err != nil {
		return nil, false
	}
	list := findList(root)
	if list == nil {
		return nil, false
	}
	src := []byte(value)
	var entries []graph.OverrideEntry
	for i := 0; i < int(list.NamedChildCount()); i++ {
		element := list.NamedChild(i)
		if element.Type() == "comment" {
			continue
		}
		entries = append(entries, graph.OverrideEntry{
			Record: parseRecord(element, src),
			Location: graph.Location{
				Start: offset + int(element.StartByte()),
				End:   offset + int(element.EndByte()),
			},
		})
	}
	return entries, true
}

// findList locates the outermost list literal in a parsed fragment.
func findList(node *sitter.Node) *sitter.Node {
	if node.Type() == "list" {
		return node
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if found := findList(node.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}

// parseRecord interprets one list element as a {"row": ..} dict literal.
// Anything else yields a record with every field nil.
func parseRecord(element *sitter.Node, src []byte) graph.OverrideRecord {
	var record graph.OverrideRecord
	if element.Type() != "dictionary" {
		return record
	}
	for i := 0; i < int(element.NamedChildCount()); i++ {
		pair := element.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		valueNode := pair.ChildByFieldName("value")
		if keyNode == nil || valueNode == nil {
			continue
		}
		value := parseInt(valueNode.Content(src))
		switch strings.Trim(keyNode.Content(src), `"'`) {
		case "row":
			record.Row = value
		case "col":
			record.Col = value
		case "x":
			record.X = value
		case "y":
			record.Y = value
		}
	}
	return record
}

// parseInt best-effort parses an integer literal, returning nil for anything
// else. Source text is never evaluated.
func parseInt(text string) *int {
	parsed, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return graph.Int(parsed)
}
