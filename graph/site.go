package graph

// Attribute is a position-relevant sprite attribute name as it appears in
// scene source. Other attributes are ignored on purpose.
type Attribute string

const (
	AttrLeftEdge Attribute = "leftEdge"
	AttrTopEdge  Attribute = "topEdge"
	AttrCenterX  Attribute = "centerX"
)

// Horizontal reports whether the attribute tracks the x axis.
func (a Attribute) Horizontal() bool {
	return a == AttrLeftEdge || a == AttrCenterX
}

// AssignmentSite records one `base.attr = value` statement. Target and Value
// hold verbatim source text; nothing is ever evaluated. Sites are rebuilt on
// every scan and discarded afterwards.
type AssignmentSite struct {
	File      string    `yaml:"file"`
	Line      int       `yaml:"line"`
	Column    int       `yaml:"column"`
	Target    string    `yaml:"target"`
	Attribute Attribute `yaml:"attribute"`
	Value     string    `yaml:"value"`

	Identifiers []string `yaml:"identifiers,omitempty"`

	Location      Location `yaml:"location"`
	ValueLocation Location `yaml:"valueLocation"`
}

// KeywordArgument is a tagged text span for one `name=value` call argument.
// Value is the raw source slice; interpretation is left to the caller.
type KeywordArgument struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`

	Location      Location `yaml:"location"`
	ValueLocation Location `yaml:"valueLocation"`
}

// ArrangeCallSite records one arrangement call. Keywords maps argument names
// to their spans; Identifiers lists every identifier lexically present in the
// call text, in order of appearance, used only for correlation.
type ArrangeCallSite struct {
	File   string `yaml:"file"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Text   string `yaml:"text"`

	// Arguments spans the argument list including both parentheses.
	Arguments Location `yaml:"arguments"`

	// Elements spans each argument in source order, positional and keyword,
	// excluding comments.
	Elements []Location `yaml:"elements,omitempty"`

	Keywords    map[string]*KeywordArgument `yaml:"keywords,omitempty"`
	Identifiers []string                    `yaml:"identifiers,omitempty"`

	Location Location `yaml:"location"`
}

// Keyword returns the named argument or nil.
func (c *ArrangeCallSite) Keyword(name string) *KeywordArgument {
	if c == nil || c.Keywords == nil {
		return nil
	}
	return c.Keywords[name]
}

// Kwargs returns a name→raw-text copy of the keyword arguments.
func (c *ArrangeCallSite) Kwargs() map[string]string {
	if len(c.Keywords) == 0 {
		return nil
	}
	result := make(map[string]string, len(c.Keywords))
	for name, kwarg := range c.Keywords {
		result[name] = kwarg.Value
	}
	return result
}

// ScanResult holds everything one scan produced for one file.
type ScanResult struct {
	File   string `yaml:"file"`
	Source []byte `yaml:"-"`
	Digest uint64 `yaml:"digest"`

	Assignments []*AssignmentSite  `yaml:"assignments,omitempty"`
	Calls       []*ArrangeCallSite `yaml:"calls,omitempty"`
}

// Empty reports whether the scan matched nothing at all.
func (r *ScanResult) Empty() bool {
	return len(r.Assignments) == 0 && len(r.Calls) == 0
}
