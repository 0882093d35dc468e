package seeder

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Report summarises one seed run.
type Report struct {
	RunID      string         `yaml:"run_id"`
	Provider   string         `yaml:"provider"`
	RandomSeed int64          `yaml:"random_seed"`
	StartedAt  time.Time      `yaml:"started_at"`
	Duration   time.Duration  `yaml:"duration"`
	Rows       map[string]int `yaml:"rows"`
	Committed  bool           `yaml:"committed"`
}

func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
