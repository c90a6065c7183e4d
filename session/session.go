// Package session wires the synchronization engine together for one editor
// session: the arena of live objects, the scanner, the correlation pass and
// the edit engine share one explicit context created at session start and
// dropped at session end - there is no process-wide state.
package session

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/viant/spritesync/correlate"
	"github.com/viant/spritesync/edit"
	"github.com/viant/spritesync/graph"
	"github.com/viant/spritesync/grid"
	"github.com/viant/spritesync/registry"
	"github.com/viant/spritesync/scanner"
)

// Session is the explicit sync context for one editor session.
type Session struct {
	config     *graph.Config
	arena      *registry.Arena
	scanner    *scanner.Scanner
	correlator *correlate.Correlator
	engine     *edit.Engine
	logger     *zap.Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger injects a logger shared by every component; the default is a
// nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates a Session with the provided configuration, defaulting when nil.
func New(config *graph.Config, options ...Option) *Session {
	if config == nil {
		config = graph.DefaultConfig()
	}
	config.Init()
	result := &Session{
		config: config,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(result)
	}
	result.arena = registry.NewArena()
	result.scanner = scanner.New(config)
	result.correlator = correlate.New(result.scanner, result.arena, correlate.WithLogger(result.logger))
	result.engine = edit.New(config, edit.WithLogger(result.logger))
	return result
}

// Arena exposes the live-object registry.
func (s *Session) Arena() *registry.Arena {
	return s.arena
}

// Engine exposes the edit engine, used directly by the inspection panel.
func (s *Session) Engine() *edit.Engine {
	return s.engine
}

// Scanner exposes the structural scanner.
func (s *Session) Scanner() *scanner.Scanner {
	return s.scanner
}

// FilesChanged is the entry point for the file-watcher collaborator: it runs
// one correlation pass over the changed files.
func (s *Session) FilesChanged(ctx context.Context, files []string) *correlate.Report {
	return s.correlator.Apply(ctx, files)
}

// Placement carries one live object's current position into an export.
type Placement struct {
	Handle registry.Handle
	X      float64
	Y      float64
}

// ExportReport summarizes one export walk.
type ExportReport struct {
	Updated int // edits written
	Skipped int // markers skipped (stale, unresolvable or no-op)
	Failed  int // objects whose sync attempt failed
	Backups []string
}

// Export writes the placements back into source. Placements are processed in
// order; when two objects resolve to the same grid cell the last one
// processed wins. Each object's sync attempt is isolated: a failure is
// logged and counted, never propagated to abort the walk.
func (s *Session) Export(ctx context.Context, placements []Placement) *ExportReport {
	report := &ExportReport{}
	for _, placement := range placements {
		if err := s.exportOne(ctx, placement, report); err != nil {
			report.Failed++
			s.logger.Warn("sync failed",
				zap.Uint64("handle", uint64(placement.Handle)),
				zap.Error(err))
		}
	}
	return report
}

// exportOne syncs every fresh marker of one object.
func (s *Session) exportOne(ctx context.Context, placement Placement, report *ExportReport) error {
	for _, marker := range s.arena.Markers(placement.Handle) {
		if marker.Status != graph.StatusFresh {
			report.Skipped++
			continue
		}
		switch marker.Kind {
		case graph.KindAssignment:
			value := strconv.Itoa(coordinate(marker.Attribute, placement))
			result, err := s.engine.UpdateAssignment(ctx, marker.File, marker.Target, marker.Attribute, value)
			if err != nil {
				return err
			}
			record(result, report)
		case graph.KindArrange:
			cell, ok := grid.Resolve(grid.ParseParams(marker.Kwargs), placement.X, placement.Y)
			if !ok {
				report.Skipped++
				continue
			}
			result, err := s.engine.UpsertCellOverride(ctx, marker.File, marker.Line,
				cell.Row, cell.Col, round(placement.X), round(placement.Y))
			if err != nil {
				return err
			}
			record(result, report)
		}
	}
	return nil
}

func record(result edit.Result, report *ExportReport) {
	if !result.Changed {
		report.Skipped++
		return
	}
	report.Updated++
	if result.BackupURL != "" {
		report.Backups = append(report.Backups, result.BackupURL)
	}
}

// coordinate picks the axis an attribute tracks.
func coordinate(attribute graph.Attribute, placement Placement) int {
	if attribute.Horizontal() {
		return round(placement.X)
	}
	return round(placement.Y)
}

func round(value float64) int {
	return int(math.RoundToEven(value))
}
