// SPDX-License-Identifier: Unlicense OR MIT

package device

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by this package and every backend.
// Logging is silent by default; pass nil to silence it again.
//
// Levels:
//   - [slog.LevelDebug]: negotiation attributes, native handles
//   - [slog.LevelInfo]: device selection, surface and context lifecycle
//   - [slog.LevelWarn]: soft failures (config mismatch, missing font)
//   - [slog.LevelError]: recoverable and fatal failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Backends call it on every use so a
// later SetLogger takes effect immediately.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
