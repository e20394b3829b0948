// Package logger configures the process-wide slog logger. The default
// "console" format prints compact human-readable lines for interactive use;
// "json" and "text" delegate to the stdlib handlers for log collection.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Level  string
	Format string // "console", "json" or "text"
	Output io.Writer
}

var (
	initOnce sync.Once
	root     *slog.Logger
)

// Init builds the logger from cfg and installs it as the slog default.
// Only the first call has any effect.
func Init(cfg Config) {
	initOnce.Do(func() {
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

		var h slog.Handler
		switch cfg.Format {
		case "json":
			h = slog.NewJSONHandler(out, opts)
		case "text":
			h = slog.NewTextHandler(out, opts)
		default:
			h = &consoleHandler{w: out, level: parseLevel(cfg.Level)}
		}
		root = slog.New(h)
		slog.SetDefault(root)
	})
}

// L returns the configured logger, initializing a debug console logger if
// Init was never called.
func L() *slog.Logger {
	if root == nil {
		Init(Config{Level: "debug", Format: "console"})
	}
	return root
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler writes one line per record:
//
//	12:00:00 INFO  Connected to server  address=127.0.0.1:25565
type consoleHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		b.WriteString(formatAttr(h.group, a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(formatAttr(h.group, a))
		return true
	})
	b.WriteByte('\n')

	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.attrs = append(c.attrs, attrs...)
	return c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	c := h.clone()
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return c
}

func (h *consoleHandler) clone() *consoleHandler {
	return &consoleHandler{
		w:     h.w,
		level: h.level,
		attrs: append([]slog.Attr(nil), h.attrs...),
		group: h.group,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
