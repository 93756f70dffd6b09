package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error, fatal
	Development bool   // human-readable console output instead of JSON
	LogFile     string // optional file path for logs, JSON only
	Service     string // value of the "service" field on every line
}

// Init replaces the global logger. The returned closer releases the log file,
// if one was opened.
func Init(cfg Config) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var closer io.Closer = nopCloser{}
	var file io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return closer, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		file, closer = f, f
	}

	log.Logger = New(os.Stdout, file, cfg)
	return closer, nil
}

// New builds a logger writing to out and, when not nil, to file as JSON.
func New(out, file io.Writer, cfg Config) zerolog.Logger {
	var w io.Writer = out
	if cfg.Development {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	if file != nil {
		w = zerolog.MultiLevelWriter(w, file)
	}

	ctx := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Caller()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	return ctx.Logger()
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FromContext returns the logger from context or the global logger
func FromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ContextKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}

// WithContext returns a context with the logger attached
func WithContext(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ContextKey, logger)
}

type contextKey string

// ContextKey is the key used to store logger in context
const ContextKey contextKey = "logger"
