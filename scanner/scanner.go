// Package scanner locates position-relevant expressions in sprite scene
// sources. It parses one file at a time into assignment and arrangement-call
// sites carrying exact byte spans, so that structural edits can splice the
// original text without disturbing a single surrounding byte.
package scanner

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/afs"
	"github.com/viant/spritesync/graph"
)

// ErrParse signals that a source file could not be parsed; callers skip the
// file and continue with others.
var ErrParse = errors.New("failed to parse source")

// Scanner extracts assignment and arrangement-call sites from scene sources.
type Scanner struct {
	config     *graph.Config
	attributes map[graph.Attribute]bool
	parser     *sitter.Parser
	fs         afs.Service
}

// New creates a Scanner with the provided configuration, defaulting when nil.
func New(config *graph.Config) *Scanner {
	if config == nil {
		config = graph.DefaultConfig()
	}
	config.Init()
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Scanner{
		config:     config,
		attributes: config.AttributeSet(),
		parser:     parser,
		fs:         afs.New(),
	}
}

// ScanFile reads and scans a source file addressed by URL.
func (s *Scanner) ScanFile(ctx context.Context, URL string) (*graph.ScanResult, error) {
	src, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	result, err := s.ScanSource(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", URL, err)
	}
	result.File = URL
	for _, site := range result.Assignments {
		site.File = URL
	}
	for _, call := range result.Calls {
		call.File = URL
	}
	return result, nil
}

// ScanSource scans in-memory source text.
func (s *Scanner) ScanSource(src []byte) (*graph.ScanResult, error) {
	root, err := s.parse(src)
	if err != nil {
		return nil, err
	}
	digest, _ := graph.Hash(src)
	result := &graph.ScanResult{Source: src, Digest: digest}
	s.walk(root, src, result)
	return result, nil
}

func (s *Scanner) parse(src []byte) (*sitter.Node, error) {
	tree, err := s.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: syntax error", ErrParse)
	}
	return root, nil
}

// walk visits every named node, collecting matching sites. Calls nested in
// other call arguments are still visited because the walk recurses through
// every child.
func (s *Scanner) walk(node *sitter.Node, src []byte, result *graph.ScanResult) {
	switch node.Type() {
	case "assignment":
		if site := s.parseAssignment(node, src); site != nil {
			result.Assignments = append(result.Assignments, site)
		}
	case "call":
		if site := s.parseCall(node, src); site != nil {
			result.Calls = append(result.Calls, site)
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		s.walk(node.NamedChild(i), src, result)
	}
}

// parseAssignment matches `base.attr = value` where attr is configured as
// position relevant. Base and value are captured verbatim.
func (s *Scanner) parseAssignment(node *sitter.Node, src []byte) *graph.AssignmentSite {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "attribute" {
		return nil
	}
	attrNode := left.ChildByFieldName("attribute")
	baseNode := left.ChildByFieldName("object")
	if attrNode == nil || baseNode == nil {
		return nil
	}
	attribute := graph.Attribute(attrNode.Content(src))
	if !s.attributes[attribute] {
		return nil
	}
	return &graph.AssignmentSite{
		Line:        int(node.StartPoint().Row) + 1,
		Column:      int(node.StartPoint().Column) + 1,
		Target:      baseNode.Content(src),
		Attribute:   attribute,
		Value:       right.Content(src),
		Identifiers: identifiers(baseNode, src),
		Location: graph.Location{
			Start: int(node.StartByte()),
			End:   int(node.EndByte()),
		},
		ValueLocation: graph.Location{
			Start: int(right.StartByte()),
			End:   int(right.EndByte()),
		},
	}
}

// parseCall matches calls whose final identifier equals the configured
// arrangement function name, whether free or method form. Positional-only
// calls are still recognized; only keyword arguments populate Keywords.
func (s *Scanner) parseCall(node *sitter.Node, src []byte) *graph.ArrangeCallSite {
	function := node.ChildByFieldName("function")
	arguments := node.ChildByFieldName("arguments")
	if function == nil || arguments == nil {
		return nil
	}
	if calleeName(function, src) != s.config.ArrangeFunction {
		return nil
	}
	site := &graph.ArrangeCallSite{
		Line:        int(node.StartPoint().Row) + 1,
		Column:      int(node.StartPoint().Column) + 1,
		Text:        node.Content(src),
		Identifiers: identifiers(node, src),
		Arguments: graph.Location{
			Start: int(arguments.StartByte()),
			End:   int(arguments.EndByte()),
		},
		Location: graph.Location{
			Start: int(node.StartByte()),
			End:   int(node.EndByte()),
		},
	}
	for i := 0; i < int(arguments.NamedChildCount()); i++ {
		child := arguments.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		site.Elements = append(site.Elements, graph.Location{
			Start: int(child.StartByte()),
			End:   int(child.EndByte()),
		})
		if child.Type() != "keyword_argument" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		valueNode := child.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}
		if site.Keywords == nil {
			site.Keywords = map[string]*graph.KeywordArgument{}
		}
		name := nameNode.Content(src)
		site.Keywords[name] = &graph.KeywordArgument{
			Name:  name,
			Value: valueNode.Content(src),
			Location: graph.Location{
				Start: int(child.StartByte()),
				End:   int(child.EndByte()),
			},
			ValueLocation: graph.Location{
				Start: int(valueNode.StartByte()),
				End:   int(valueNode.EndByte()),
			},
		}
	}
	return site
}

// calleeName returns the final identifier of a call target, so that both
// arrangeGrid(...) and layout.arrangeGrid(...) match.
func calleeName(function *sitter.Node, src []byte) string {
	switch function.Type() {
	case "identifier":
		return function.Content(src)
	case "attribute":
		if attr := function.ChildByFieldName("attribute"); attr != nil {
			return attr.Content(src)
		}
	}
	return ""
}

// identifiers collects every identifier lexically present under node, in
// order of appearance, deduplicated.
func identifiers(node *sitter.Node, src []byte) []string {
	var result []string
	seen := map[string]bool{}
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.Type() == "identifier" {
			name := n.Content(src)
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(node)
	return result
}
