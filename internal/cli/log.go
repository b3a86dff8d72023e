// Package cli implements the sourceloc command-line interface.
//
// The CLI resolves the source location of catalog entity files, lists the
// configured SCM integrations and serves the same lookups over HTTP. It is
// built using cobra, binds flags to SOURCELOC_* environment variables
// through viper, and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - resolve: Print the source location of every entity in the given files
//   - integrations: List the integrations built from the config
//   - serve: Run the HTTP API
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, including
// one line per resolved entity.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sourceloc/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Resolved 3 of 4 entities (2ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Resolution Logging
// =============================================================================

// logHooks writes one debug line per resolution.
type logHooks struct {
	logger *log.Logger
}

var _ observability.ResolveHooks = logHooks{}

func (h logHooks) OnResolve(ref, reason, typ string, d time.Duration, err error) {
	kv := []any{"entity", ref, "reason", reason}
	if typ != "" {
		kv = append(kv, "type", typ)
	}
	if err != nil {
		kv = append(kv, "err", err)
	}
	kv = append(kv, "took", d.Round(time.Microsecond))
	h.logger.Debug("Resolved", kv...)
}

// resolveStats counts resolutions per reason. Not safe for concurrent use.
type resolveStats struct {
	total   int
	reasons map[string]int
}

var _ observability.ResolveHooks = (*resolveStats)(nil)

func newResolveStats() *resolveStats {
	return &resolveStats{reasons: make(map[string]int)}
}

func (s *resolveStats) OnResolve(_, reason, _ string, _ time.Duration, _ error) {
	s.total++
	s.reasons[reason]++
}

// =============================================================================
// Context
// =============================================================================

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
