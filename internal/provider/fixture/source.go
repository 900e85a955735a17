// Package fixture serves jobs from a local YAML file, for development
// without network access.
package fixture

import (
	"context"
	"fmt"

	"github.com/lei/jobtabs/internal/config"
	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/pkg/logger"
)

// Source implements provider.Source over a jobs file
type Source struct {
	path   string
	logger *logger.Logger
}

// NewSource creates a file-backed source. The file is read on each fetch.
func NewSource(path string, log *logger.Logger) *Source {
	return &Source{path: path, logger: log}
}

// FetchJobs implements provider.Source
func (s *Source) FetchJobs(ctx context.Context) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobs, err := config.LoadJobs(s.path)
	if err != nil {
		s.logger.Error("source: failed to read jobs file", "path", s.path, "error", err)
		return nil, fmt.Errorf("load fixture: %w", err)
	}

	s.logger.Info("source: jobs read from file", "path", s.path, "count", len(jobs))
	return jobs, nil
}
