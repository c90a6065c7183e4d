package session

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/spritesync/graph"
)

// LoadConfig reads a yaml sync configuration from the given URL. Missing
// fields fall back to defaults.
func LoadConfig(ctx context.Context, URL string) (*graph.Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	config := &graph.Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	config.Init()
	return config, nil
}
