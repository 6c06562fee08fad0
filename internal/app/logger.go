package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/moviedb-backend/internal/config"
)

const redacted = "[redacted]"

// sensitiveKeys never reach log output, whatever the handler.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"api_key":       {},
	"token":         {},
	"access_token":  {},
	"authorization": {},
	"dsn":           {},
	"jwt_secret":    {},
}

// NewLogger builds the process logger from cfg, writes to stderr and
// installs it as the slog default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// newLogger emits JSON when cfg.Format is "json" and text with source
// locations otherwise. Every record carries the app name.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	asJSON := strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   !asJSON,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", "moviedb"))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redacted)
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
