package graph

// Location is a half-open byte span [Start, End) into the scanned source.
type Location struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Len returns the span length in bytes.
func (l Location) Len() int {
	return l.End - l.Start
}

// Slice returns the verbatim source text covered by the span.
func (l Location) Slice(src []byte) string {
	if l.Start < 0 || l.End > len(src) || l.Start > l.End {
		return ""
	}
	return string(src[l.Start:l.End])
}
