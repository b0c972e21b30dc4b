package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Result is the outcome of one case.
type Result struct {
	Name     string        `yaml:"name"`
	Passed   bool          `yaml:"passed"`
	Error    string        `yaml:"error,omitempty"`
	Duration time.Duration `yaml:"duration"`
}

// Report collects the results of a run.
type Report struct {
	Results []Result      `yaml:"results"`
	Passed  int           `yaml:"passed"`
	Total   int           `yaml:"total"`
	Elapsed time.Duration `yaml:"elapsed"`
}

func (r Report) Summary() string {
	return fmt.Sprintf("%d/%d cases succeeded", r.Passed, r.Total)
}

// OK reports whether every case passed.
func (r Report) OK() bool {
	return r.Passed == r.Total
}

// WriteYAML encodes the report as YAML.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the YAML report to path.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	if err := r.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
