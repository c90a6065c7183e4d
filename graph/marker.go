package graph

// MarkerStatus tells whether a marker's source reference survived the last
// correlation pass.
type MarkerStatus string

const (
	StatusFresh   MarkerStatus = "fresh"
	StatusMissing MarkerStatus = "missing"
)

// MarkerKind distinguishes assignment-backed markers from arrangement-backed
// ones.
type MarkerKind string

const (
	KindAssignment MarkerKind = "assignment"
	KindArrange    MarkerKind = "arrange"
)

// Marker records one source location currently backing a live object. The
// correlation pass replaces an object's marker set wholesale; a marker set is
// always the complete truth as of the last pass. Missing markers are kept as
// a visible signal, never silently erased.
type Marker struct {
	File string     `yaml:"file"`
	Line int        `yaml:"line"`
	Kind MarkerKind `yaml:"kind"`

	// Target and Attribute are set for assignment markers.
	Target    string    `yaml:"target,omitempty"`
	Attribute Attribute `yaml:"attribute,omitempty"`

	// Kwargs carries the raw keyword arguments for arrange markers.
	Kwargs map[string]string `yaml:"kwargs,omitempty"`

	Status MarkerStatus `yaml:"status"`

	// Digest is the content hash of the file as of correlation, so the
	// editor can cheaply tell whether the file drifted under the marker.
	Digest uint64 `yaml:"digest,omitempty"`
}
