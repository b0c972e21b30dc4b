package bench

import (
	"context"
	"fmt"
	"log/slog"

	"firestige.xyz/veribench/internal/config"
	applog "firestige.xyz/veribench/internal/log"
)

// Execute loads configuration from configPath (defaults when empty), sets up
// logging, runs the configured cases and writes the report if a report path is
// configured.
func Execute(ctx context.Context, configPath string) (Report, error) {
	var (
		cfg *config.GlobalConfig
		err error
	)
	if configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return Report{}, err
	}

	if err := applog.Init(cfg.Log); err != nil {
		return Report{}, fmt.Errorf("failed to init logging: %w", err)
	}

	r, err := New(cfg, WithLogger(slog.Default().With("component", "bench")))
	if err != nil {
		return Report{}, err
	}

	report := r.Run(ctx)
	if cfg.Bench.ReportPath != "" {
		if err := report.WriteFile(cfg.Bench.ReportPath); err != nil {
			return report, err
		}
		slog.Info("report written", "path", cfg.Bench.ReportPath)
	}
	return report, nil
}
