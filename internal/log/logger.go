// Package log sets up the process logger: a slog handler over stdout plus an
// optional rotated file.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"firestige.xyz/veribench/internal/config"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Init builds a logger from cfg writing to stdout and installs it as the slog
// default.
func Init(cfg config.LogConfig) error {
	logger, err := New(cfg, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// New builds a logger writing to out and, when enabled, to a rotated file.
func New(cfg config.LogConfig, out io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	w, err := sink(cfg.Outputs, out)
	if err != nil {
		return nil, err
	}
	h, err := newHandler(cfg.Format, w, &slog.HandlerOptions{Level: level})
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

func parseLevel(s string) (slog.Level, error) {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level: %q", s)
}

// sink fans out to out and the rotated file, if one is configured.
func sink(outputs config.LogOutputsConfig, out io.Writer) (io.Writer, error) {
	if !outputs.File.Enabled {
		return out, nil
	}
	rotated, err := rotatingFile(outputs.File)
	if err != nil {
		return nil, fmt.Errorf("file output: %w", err)
	}
	return io.MultiWriter(out, rotated), nil
}

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	}
	return nil, fmt.Errorf("unsupported log format %q: want json or text", format)
}

func rotatingFile(fc config.FileOutputConfig) (*lumberjack.Logger, error) {
	if fc.Path == "" {
		return nil, fmt.Errorf("missing path")
	}
	rot := fc.Rotation
	return &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    rot.MaxSizeMB,
		MaxBackups: rot.MaxBackups,
		MaxAge:     rot.MaxAgeDays,
		Compress:   rot.Compress,
	}, nil
}
