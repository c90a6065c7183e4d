// Package correlate matches scanned source records to live registered
// objects via shared identifier tokens, refreshing each object's source
// markers after files change on disk.
package correlate

import (
	"context"

	"go.uber.org/zap"

	"github.com/viant/spritesync/graph"
	"github.com/viant/spritesync/registry"
	"github.com/viant/spritesync/scanner"
)

// Correlator recomputes object markers from fresh scans of changed files.
type Correlator struct {
	scanner *scanner.Scanner
	arena   *registry.Arena
	logger  *zap.Logger
}

// Option customizes a Correlator.
type Option func(*Correlator)

// WithLogger injects a logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Correlator) {
		c.logger = logger
	}
}

// New creates a Correlator over the given scanner and arena.
func New(aScanner *scanner.Scanner, arena *registry.Arena, options ...Option) *Correlator {
	result := &Correlator{
		scanner: aScanner,
		arena:   arena,
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(result)
	}
	return result
}

// Report summarizes one correlation pass.
type Report struct {
	Scanned int // files scanned successfully
	Skipped int // files skipped on read or parse failure
	Updated int // objects whose marker set was replaced
	Demoted int // objects with markers demoted to missing
}

// Apply runs one correlation pass over the changed files. Correlation is
// fully recomputed from the current scans; the only state carried across
// passes is the missing-status demotion rule. Per-file failures are isolated:
// a file that fails to read or parse is skipped and never disturbs results
// from other files.
func (c *Correlator) Apply(ctx context.Context, files []string) *Report {
	report := &Report{}
	assignIndex := map[string][]*graph.AssignmentSite{}
	callIndex := map[string][]*graph.ArrangeCallSite{}
	digests := map[string]uint64{}
	var emptyFiles []string

	// Watchers may report the same path more than once per batch; a file is
	// scanned and indexed once so markers never duplicate.
	seen := map[string]bool{}
	for _, file := range files {
		if seen[file] {
			continue
		}
		seen[file] = true
		result, err := c.scanner.ScanFile(ctx, file)
		if err != nil {
			report.Skipped++
			c.logger.Warn("skipping file", zap.String("file", file), zap.Error(err))
			continue
		}
		report.Scanned++
		if result.Empty() {
			emptyFiles = append(emptyFiles, file)
			continue
		}
		digests[result.File] = result.Digest
		for _, site := range result.Assignments {
			for _, token := range site.Identifiers {
				assignIndex[token] = append(assignIndex[token], site)
			}
		}
		for _, call := range result.Calls {
			for _, token := range call.Identifiers {
				callIndex[token] = append(callIndex[token], call)
			}
		}
	}

	pending := map[registry.Handle][]graph.Marker{}
	tokens := map[string]bool{}
	for token := range assignIndex {
		tokens[token] = true
	}
	for token := range callIndex {
		tokens[token] = true
	}
	for token := range tokens {
		handles := c.arena.Lookup(token)
		if len(handles) == 0 {
			continue
		}
		markers := c.markersFor(token, assignIndex, callIndex, digests)
		for _, handle := range handles {
			pending[handle] = append(pending[handle], markers...)
		}
	}
	for handle, markers := range pending {
		c.arena.SetMarkers(handle, markers)
		report.Updated++
	}

	// A changed file that scanned clean but matched nothing demotes any
	// marker still pointing at it: signal, never erase.
	for _, file := range emptyFiles {
		for _, handle := range c.arena.Handles() {
			markers := c.arena.Markers(handle)
			demoted := false
			for i := range markers {
				if markers[i].File == file && markers[i].Status != graph.StatusMissing {
					markers[i].Status = graph.StatusMissing
					demoted = true
				}
			}
			if demoted {
				c.arena.SetMarkers(handle, markers)
				report.Demoted++
			}
		}
	}
	return report
}

// markersFor builds the complete fresh marker set a token's objects receive:
// one marker per matching assignment site, one per matching arrangement call.
func (c *Correlator) markersFor(token string, assignIndex map[string][]*graph.AssignmentSite, callIndex map[string][]*graph.ArrangeCallSite, digests map[string]uint64) []graph.Marker {
	var markers []graph.Marker
	for _, site := range assignIndex[token] {
		markers = append(markers, graph.Marker{
			File:      site.File,
			Line:      site.Line,
			Kind:      graph.KindAssignment,
			Target:    site.Target,
			Attribute: site.Attribute,
			Status:    graph.StatusFresh,
			Digest:    digests[site.File],
		})
	}
	for _, call := range callIndex[token] {
		markers = append(markers, graph.Marker{
			File:   call.File,
			Line:   call.Line,
			Kind:   graph.KindArrange,
			Kwargs: call.Kwargs(),
			Status: graph.StatusFresh,
			Digest: digests[call.File],
		})
	}
	return markers
}
