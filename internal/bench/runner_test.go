package bench

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"firestige.xyz/veribench/internal/config"
	"firestige.xyz/veribench/internal/metrics"
)

func testConfig(cases ...string) *config.GlobalConfig {
	return &config.GlobalConfig{
		Bench: config.BenchConfig{Cases: cases},
		Session: config.SessionConfig{
			Seed:       3,
			CommandMin: -1,
			CommandMax: 5,
			MaxSteps:   2000,
		},
	}
}

func TestBuiltinCasesPass(t *testing.T) {
	r, err := New(testConfig(CaseAddressFamily, CaseResourceManager))
	require.NoError(t, err)

	report := r.Run(context.Background())
	assert.True(t, report.OK(), "report: %+v", report)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, "2/2 cases succeeded", report.Summary())
	require.Len(t, report.Results, 2)
	assert.Equal(t, CaseAddressFamily, report.Results[0].Name)
	assert.Equal(t, CaseResourceManager, report.Results[1].Name)
}

func TestNewUnknownCase(t *testing.T) {
	_, err := New(testConfig("find_last"))
	assert.ErrorIs(t, err, ErrUnknownCase)
}

func TestNewDuplicateCase(t *testing.T) {
	_, err := New(testConfig(CaseAddressFamily, CaseAddressFamily))
	assert.ErrorIs(t, err, ErrDuplicateCase)
}

func TestRunRecordsFailures(t *testing.T) {
	r := NewRunner()
	require.NoError(t, r.Register(Case{Name: "ok", Run: func(context.Context) error { return nil }}))
	require.NoError(t, r.Register(Case{Name: "broken", Run: func(context.Context) error { return errors.New("proof failed") }}))

	report := r.Run(context.Background())
	assert.False(t, report.OK())
	assert.Equal(t, "1/2 cases succeeded", report.Summary())
	assert.True(t, report.Results[0].Passed)
	assert.False(t, report.Results[1].Passed)
	assert.Equal(t, "proof failed", report.Results[1].Error)
}

func TestRunSkipsCasesAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ran := 0
	r := NewRunner()
	require.NoError(t, r.Register(Case{Name: "first", Run: func(context.Context) error {
		ran++
		cancel()
		return nil
	}}))
	require.NoError(t, r.Register(Case{Name: "second", Run: func(context.Context) error {
		ran++
		return nil
	}}))

	report := r.Run(ctx)
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, context.Canceled.Error(), report.Results[1].Error)
}

func TestRunTimeout(t *testing.T) {
	r := NewRunner(WithTimeout(time.Millisecond))
	require.NoError(t, r.Register(Case{Name: "slow", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}))

	report := r.Run(context.Background())
	assert.Equal(t, 0, report.Passed)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.Results[0].Error)
}

func TestResourceManagerHonoursMaxSteps(t *testing.T) {
	sc := config.SessionConfig{Seed: 1, CommandMin: 1, CommandMax: 4, MaxSteps: 50}
	assert.NoError(t, checkResourceManager(context.Background(), sc))
}

func TestResourceManagerFullWidthCommandRange(t *testing.T) {
	ranges := []config.SessionConfig{
		{Seed: 3, CommandMin: 0, CommandMax: math.MaxInt, MaxSteps: 200},
		{Seed: 3, CommandMin: math.MinInt, CommandMax: math.MaxInt, MaxSteps: 200},
		{Seed: 3, CommandMin: -1, CommandMax: math.MaxInt, MaxSteps: 200},
	}
	for _, sc := range ranges {
		assert.NoError(t, checkResourceManager(context.Background(), sc))
	}
}

func TestReportYAML(t *testing.T) {
	report := Report{
		Results: []Result{
			{Name: CaseAddressFamily, Passed: true, Duration: time.Millisecond},
			{Name: CaseResourceManager, Error: "boom", Duration: 2 * time.Millisecond},
		},
		Passed:  1,
		Total:   2,
		Elapsed: 3 * time.Millisecond,
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "name: cve_2014_7841")
	assert.Contains(t, buf.String(), "error: boom")
	assert.Contains(t, buf.String(), "elapsed: 3ms")

	path := filepath.Join(t.TempDir(), "report.yml")
	require.NoError(t, report.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Passed  int `yaml:"passed"`
		Total   int `yaml:"total"`
		Results []struct {
			Name   string `yaml:"name"`
			Passed bool   `yaml:"passed"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Passed)
	assert.Equal(t, 2, decoded.Total)
	assert.Len(t, decoded.Results, 2)
}

func TestRunRecordsMetrics(t *testing.T) {
	passed := metrics.BenchCasesTotal.WithLabelValues("metrics_sample", "passed")
	before := testutil.ToFloat64(passed)

	r := NewRunner()
	require.NoError(t, r.Register(Case{Name: "metrics_sample", Run: func(context.Context) error { return nil }}))
	r.Run(context.Background())

	assert.Equal(t, before+1, testutil.ToFloat64(passed))
}
