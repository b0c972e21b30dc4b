// Package bench runs named verification benchmark cases and reports which of
// them succeeded.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"firestige.xyz/veribench/internal/config"
	"firestige.xyz/veribench/internal/metrics"
)

var (
	ErrUnknownCase   = errors.New("bench: unknown case")
	ErrDuplicateCase = errors.New("bench: case already registered")
)

// Case is one benchmark. Run returns nil when the benchmark's expectations
// hold.
type Case struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes cases in registration order.
type Runner struct {
	cases   []Case
	names   map[string]bool
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for case progress.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTimeout bounds the whole run. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// NewRunner returns an empty runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		names:  make(map[string]bool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New builds a runner holding the built-in cases named in cfg.Bench.
func New(cfg *config.GlobalConfig, opts ...Option) (*Runner, error) {
	opts = append([]Option{WithTimeout(cfg.Bench.Timeout)}, opts...)
	r := NewRunner(opts...)

	builtins := Builtins(cfg.Session)
	for _, name := range cfg.Bench.Cases {
		c, ok := builtins[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCase, name)
		}
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends c to the run order.
func (r *Runner) Register(c Case) error {
	if r.names[c.Name] {
		return fmt.Errorf("%w: %s", ErrDuplicateCase, c.Name)
	}
	r.names[c.Name] = true
	r.cases = append(r.cases, c)
	return nil
}

// Run executes every registered case. Once ctx is done the remaining cases are
// recorded as failed with the context error.
func (r *Runner) Run(ctx context.Context) Report {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	report := Report{Total: len(r.cases)}

	for _, c := range r.cases {
		res := Result{Name: c.Name}
		caseStart := time.Now()

		err := ctx.Err()
		if err == nil {
			r.logger.Info("running case", "case", c.Name)
			err = c.Run(ctx)
		}
		res.Duration = time.Since(caseStart)

		if err != nil {
			res.Error = err.Error()
			r.logger.Warn("case failed", "case", c.Name, "error", err, "duration", res.Duration)
		} else {
			res.Passed = true
			report.Passed++
			r.logger.Info("case passed", "case", c.Name, "duration", res.Duration)
		}
		metrics.BenchCasesTotal.WithLabelValues(c.Name, metrics.Outcome(res.Passed)).Inc()
		metrics.BenchCaseDurationSeconds.WithLabelValues(c.Name).Observe(res.Duration.Seconds())
		report.Results = append(report.Results, res)
	}

	report.Elapsed = time.Since(start)
	r.logger.Info(report.Summary(), "elapsed", report.Elapsed)
	return report
}
