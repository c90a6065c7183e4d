// Package edit rewrites position-relevant expressions in scene sources while
// preserving all surrounding formatting, comments and unrelated code. Every
// operation re-reads its file fresh from storage, rewrites only the targeted
// node, and maintains a one-time pre-session backup sidecar.
package edit

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/viant/spritesync/graph"
	"github.com/viant/spritesync/scanner"
)

// Engine performs structural mutations on scene sources.
type Engine struct {
	fs        afs.Service
	scanner   *scanner.Scanner
	backupExt string
	logger    *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger injects a logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine with the provided configuration, defaulting when nil.
func New(config *graph.Config, options ...Option) *Engine {
	if config == nil {
		config = graph.DefaultConfig()
	}
	config.Init()
	result := &Engine{
		fs:        afs.New(),
		scanner:   scanner.New(config),
		backupExt: config.BackupExt,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(result)
	}
	return result
}

// Result reports the outcome of one mutating operation. BackupURL is empty
// when no backup was created on this call, whether because nothing changed or
// because the session baseline already exists.
type Result struct {
	Changed   bool
	BackupURL string
}

// transform produces the rewritten file content, or nil when the targeted
// node was not found.
type transform func(src []byte, result *graph.ScanResult) ([]byte, error)

// rewrite is the shared contract of every mutating operation: read fresh,
// scan, transform, and write whole-file - never a partial patch. A transform
// yielding byte-identical output is a no-op: no write, no backup.
func (e *Engine) rewrite(ctx context.Context, URL string, apply transform) (Result, error) {
	src, result, err := e.scan(ctx, URL)
	if err != nil {
		return Result{}, err
	}
	rewritten, err := apply(src, result)
	if err != nil {
		return Result{}, err
	}
	if rewritten == nil || bytes.Equal(rewritten, src) {
		return Result{}, nil
	}
	backupURL := e.ensureBackup(ctx, URL, src)
	if err := e.fs.Upload(ctx, URL, 0644, bytes.NewReader(rewritten)); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return Result{Changed: true, BackupURL: backupURL}, nil
}

func (e *Engine) scan(ctx context.Context, URL string) ([]byte, *graph.ScanResult, error) {
	src, err := e.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	result, err := e.scanner.ScanSource(src)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", URL, err)
	}
	result.File = URL
	return src, result, nil
}

// ensureBackup writes the pre-edit content to the backup sidecar unless one
// already exists; an existing backup remains the session baseline. Backups
// are best effort and never block the primary edit.
func (e *Engine) ensureBackup(ctx context.Context, URL string, content []byte) string {
	backupURL := URL + e.backupExt
	exists, err := e.fs.Exists(ctx, backupURL)
	if err != nil {
		e.logger.Warn("backup check failed", zap.String("backup", backupURL), zap.Error(err))
		return ""
	}
	if exists {
		return ""
	}
	if err := e.fs.Upload(ctx, backupURL, 0644, bytes.NewReader(content)); err != nil {
		e.logger.Warn("backup write failed", zap.String("backup", backupURL), zap.Error(err))
		return ""
	}
	return backupURL
}

// UpdateAssignment replaces the value expression of the first assignment
// whose base text equals target and whose attribute matches. A file with no
// such assignment is left untouched and reported as unchanged.
func (e *Engine) UpdateAssignment(ctx context.Context, URL, target string, attribute graph.Attribute, value string) (Result, error) {
	return e.rewrite(ctx, URL, func(src []byte, result *graph.ScanResult) ([]byte, error) {
		for _, site := range result.Assignments {
			if site.Target == target && site.Attribute == attribute {
				return splice(src, site.ValueLocation, value), nil
			}
		}
		return nil, nil
	})
}

// UpdateArrangeArgument sets a keyword argument on the arrangement call at
// the given line: an existing keyword has its value replaced, a new one is
// appended at the end of the argument list.
func (e *Engine) UpdateArrangeArgument(ctx context.Context, URL string, line int, name, value string) (Result, error) {
	return e.rewrite(ctx, URL, func(src []byte, result *graph.ScanResult) ([]byte, error) {
		call := findCall(result, line)
		if call == nil {
			return nil, nil
		}
		if kwarg := call.Keyword(name); kwarg != nil {
			return splice(src, kwarg.ValueLocation, value), nil
		}
		return insertElement(src, call.Arguments, lastSpan(call.Elements), name+"="+value), nil
	})
}

// UpsertCellOverride records a per-cell position exception on the
// arrangement call at the given line. An existing record for (row, col) is
// replaced in place to keep diff noise minimal; otherwise a new record is
// appended, creating the overrides keyword when absent. At most one record
// per cell leaves an upsert: duplicates already present in source are
// collapsed into the replaced record.
func (e *Engine) UpsertCellOverride(ctx context.Context, URL string, line, row, col, x, y int) (Result, error) {
	record := graph.NewOverrideRecord(row, col, x, y)
	return e.rewrite(ctx, URL, func(src []byte, result *graph.ScanResult) ([]byte, error) {
		call := findCall(result, line)
		if call == nil {
			return nil, nil
		}
		kwarg := call.Keyword("overrides")
		if kwarg == nil {
			return insertElement(src, call.Arguments, lastSpan(call.Elements), "overrides=["+record.Source()+"]"), nil
		}
		entries, ok := e.scanner.ParseOverrides(kwarg.Value, kwarg.ValueLocation.Start)
		if !ok {
			return nil, fmt.Errorf("%s:%d: overrides argument is not a list literal", URL, line)
		}
		var matched []int
		for i, entry := range entries {
			if entry.Record.Matches(row, col) {
				matched = append(matched, i)
			}
		}
		if len(matched) == 0 {
			var last *graph.Location
			if len(entries) > 0 {
				last = &entries[len(entries)-1].Location
			}
			return insertElement(src, kwarg.ValueLocation, last, record.Source()), nil
		}
		// Replace the first matching record and drop the rest, so at most
		// one record per cell survives the upsert even when the source list
		// arrived with duplicates.
		rewritten := src
		for i := len(matched) - 1; i >= 1; i-- {
			index := matched[i]
			rewritten = cut(rewritten, entries[index-1].Location.End, entries[index].Location.End)
		}
		return splice(rewritten, entries[matched[0]].Location, record.Source()), nil
	})
}

// DeleteCellOverride removes the record for (row, col) from the arrangement
// call at the given line. Deleting the last record removes the entire
// overrides keyword argument rather than leaving an empty list behind.
func (e *Engine) DeleteCellOverride(ctx context.Context, URL string, line, row, col int) (Result, error) {
	return e.rewrite(ctx, URL, func(src []byte, result *graph.ScanResult) ([]byte, error) {
		call := findCall(result, line)
		if call == nil {
			return nil, nil
		}
		kwarg := call.Keyword("overrides")
		if kwarg == nil {
			return nil, nil
		}
		entries, ok := e.scanner.ParseOverrides(kwarg.Value, kwarg.ValueLocation.Start)
		if !ok {
			return nil, nil
		}
		index := -1
		for i, entry := range entries {
			if entry.Record.Matches(row, col) {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, nil
		}
		if len(entries) == 1 {
			return removeArgument(src, call.Arguments, kwarg.Location), nil
		}
		if index > 0 {
			return cut(src, entries[index-1].Location.End, entries[index].Location.End), nil
		}
		return cut(src, entries[0].Location.Start, entries[1].Location.Start), nil
	})
}

// ListOverrides returns the override records of the arrangement call at the
// given line. A missing call or absent overrides keyword yields an empty
// list; unparseable record fields come back as nil rather than failing.
func (e *Engine) ListOverrides(ctx context.Context, URL string, line int) ([]graph.OverrideRecord, error) {
	_, result, err := e.scan(ctx, URL)
	if err != nil {
		return nil, err
	}
	call := findCall(result, line)
	if call == nil {
		return nil, nil
	}
	kwarg := call.Keyword("overrides")
	if kwarg == nil {
		return nil, nil
	}
	entries, ok := e.scanner.ParseOverrides(kwarg.Value, kwarg.ValueLocation.Start)
	if !ok {
		return nil, nil
	}
	records := make([]graph.OverrideRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Record)
	}
	return records, nil
}

// lastSpan returns the final span, nil for an empty slice.
func lastSpan(spans []graph.Location) *graph.Location {
	if len(spans) == 0 {
		return nil
	}
	return &spans[len(spans)-1]
}

// findCall returns the first arrangement call starting on the given line.
func findCall(result *graph.ScanResult, line int) *graph.ArrangeCallSite {
	for _, call := range result.Calls {
		if call.Line == line {
			return call
		}
	}
	return nil
}
