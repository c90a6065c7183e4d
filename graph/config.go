package graph

// Config controls which source shapes the scanner recognizes and how the
// edit engine names backups.
type Config struct {
	// ArrangeFunction is the final identifier of arrangement calls.
	ArrangeFunction string `yaml:"arrangeFunction"`
	// Attributes lists the position-relevant attribute names.
	Attributes []Attribute `yaml:"attributes"`
	// BackupExt is appended to a file path to form its backup sidecar.
	BackupExt string `yaml:"backupExt"`
}

// DefaultConfig returns the stock sprite-library configuration.
func DefaultConfig() *Config {
	return &Config{
		ArrangeFunction: "arrangeGrid",
		Attributes:      []Attribute{AttrLeftEdge, AttrTopEdge, AttrCenterX},
		BackupExt:       ".bak",
	}
}

// Init fills zero-valued fields with defaults.
func (c *Config) Init() {
	defaults := DefaultConfig()
	if c.ArrangeFunction == "" {
		c.ArrangeFunction = defaults.ArrangeFunction
	}
	if len(c.Attributes) == 0 {
		c.Attributes = defaults.Attributes
	}
	if c.BackupExt == "" {
		c.BackupExt = defaults.BackupExt
	}
}

// AttributeSet returns the configured attributes as a lookup set.
func (c *Config) AttributeSet() map[Attribute]bool {
	result := make(map[Attribute]bool, len(c.Attributes))
	for _, attr := range c.Attributes {
		result[attr] = true
	}
	return result
}
