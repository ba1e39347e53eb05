// Package logging wraps zerolog with the defaults safelogist uses: a file
// sink for the interactive UI (stdout belongs to the terminal) and console
// output on stderr for the other commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures a logger
type Options struct {
	Level   string    // trace, debug, info, warn, error
	Format  string    // console or json
	File    string    // append to this file when set
	Writer  io.Writer // used when File is empty, defaults to stderr
	Service string
}

// FromEnv reads SAFELOGIST_LOG_* variables
func FromEnv() Options {
	return Options{
		Level:  strings.ToLower(envOr("SAFELOGIST_LOG_LEVEL", "info")),
		Format: strings.ToLower(envOr("SAFELOGIST_LOG_FORMAT", "console")),
		File:   os.Getenv("SAFELOGIST_LOG_FILE"),
	}
}

var root atomic.Pointer[Logger]

// New builds a logger from opt. The returned closer releases the log file,
// if one was opened.
func New(opt Options) (Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	switch {
	case opt.File != "":
		f, err := os.OpenFile(opt.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	case opt.Writer != nil:
		w = opt.Writer
	}

	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: opt.File != ""}
	}

	ctx := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	return ctx.Logger(), closer, nil
}

// Init builds the process-wide logger
func Init(opt Options) (io.Closer, error) {
	l, closer, err := New(opt)
	if err != nil {
		return closer, err
	}
	root.Store(&l)
	return closer, nil
}

// Set replaces the process-wide logger
func Set(l Logger) {
	root.Store(&l)
}

// Get returns the process-wide logger, building one from the environment on
// first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l, _, err := New(FromEnv())
	if err != nil {
		l, _, _ = New(Options{Level: "info"})
	}
	root.CompareAndSwap(nil, &l)
	return root.Load()
}

// Component returns a child logger tagged with the component name
func Component(name string) *Logger {
	l := Get().With().Str("component", name).Logger()
	return &l
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
