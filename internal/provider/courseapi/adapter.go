package courseapi

import (
	"context"
	"fmt"
	"time"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/pkg/logger"
)

// Adapter implements provider.Source for the course API
type Adapter struct {
	client *Client
	logger *logger.Logger
}

// Config contains course API connection settings
type Config struct {
	URL     string
	Timeout time.Duration
}

// NewAdapter creates a new course API adapter
func NewAdapter(cfg *Config, log *logger.Logger) *Adapter {
	return &Adapter{
		client: NewClient(cfg.URL, cfg.Timeout, log),
		logger: log,
	}
}

// getLogger retrieves logger from context or falls back to adapter logger
func (a *Adapter) getLogger(ctx context.Context) *logger.Logger {
	if ctxLogger := logger.FromContext(ctx); ctxLogger != nil {
		return ctxLogger
	}
	return a.logger
}

// FetchJobs implements provider.Source
func (a *Adapter) FetchJobs(ctx context.Context) ([]models.Job, error) {
	logger := a.getLogger(ctx)

	logger.Debug("source: fetching jobs", "url", a.client.URL())

	start := time.Now()
	jobs, err := a.client.ListJobs(ctx)
	if err != nil {
		logger.Error("source: failed to fetch jobs",
			"url", a.client.URL(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	logger.Info("source: jobs fetched",
		"url", a.client.URL(),
		"count", len(jobs),
		"duration_ms", time.Since(start).Milliseconds())

	return jobs, nil
}
