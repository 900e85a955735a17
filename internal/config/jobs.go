package config

import (
	"fmt"
	"os"

	"github.com/lei/jobtabs/internal/models"
	"gopkg.in/yaml.v3"
)

// JobsConfig represents the jobs fixture file structure
type JobsConfig struct {
	Jobs []JobDefinition `yaml:"jobs"`
}

// JobDefinition represents a job entry in the fixture file
type JobDefinition struct {
	ID      string   `yaml:"id"`
	Order   int      `yaml:"order"`
	Title   string   `yaml:"title"`
	Dates   string   `yaml:"dates"`
	Duties  []string `yaml:"duties"`
	Company string   `yaml:"company"`
}

// LoadJobs reads a fixture file of jobs, keeping file order.
// Entries are not validated.
func LoadJobs(path string) ([]models.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}

	var cfg JobsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse jobs file: %w", err)
	}

	jobs := make([]models.Job, 0, len(cfg.Jobs))
	for _, jd := range cfg.Jobs {
		jobs = append(jobs, models.Job{
			ID:      jd.ID,
			Order:   jd.Order,
			Title:   jd.Title,
			Dates:   jd.Dates,
			Duties:  jd.Duties,
			Company: jd.Company,
		})
	}

	return jobs, nil
}
