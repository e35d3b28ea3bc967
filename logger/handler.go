// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// newHandler returns a colored handler for terminals and a logfmt handler otherwise.
func newHandler(w io.Writer, terminal bool) slog.Handler {
	if terminal {
		return tint.NewHandler(w, &tint.Options{
			NoColor:     runtime.GOOS == "windows",
			AddSource:   true,
			Level:       Level.lvl,
			TimeFormat:  time.TimeOnly,
			ReplaceAttr: replaceTerminalAttr,
		})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       Level.lvl,
		ReplaceAttr: replaceTextAttr,
	})
}

func replaceTextAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		// journald stamps every record
		if isJournal {
			return slog.Attr{}
		}
	case slog.LevelKey:
		return slog.String(a.Key, strings.ToLower(a.Value.String()))
	}
	return a
}

func replaceTerminalAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey && !Level.Enabled(slog.LevelDebug) {
		return slog.Attr{}
	}
	return a
}

// withCaller makes records point at the caller of the Logger method rather than at this package.
func withCaller(skip int, h slog.Handler) slog.Handler {
	if v, ok := h.(*callerHandler); ok {
		h = v.next
	}
	return &callerHandler{skip: skip, next: h}
}

type callerHandler struct {
	skip int
	next slog.Handler
}

func (h *callerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *callerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return withCaller(h.skip, h.next.WithAttrs(attrs))
}

func (h *callerHandler) WithGroup(name string) slog.Handler {
	return withCaller(h.skip, h.next.WithGroup(name))
}

func (h *callerHandler) Handle(ctx context.Context, r slog.Record) error {
	var pcs [1]uintptr
	// +2: runtime.Callers and Handle
	runtime.Callers(h.skip+2, pcs[:])
	r.PC = pcs[0]

	return h.next.Handle(ctx, r)
}
