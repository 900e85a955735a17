package provider

import (
	"context"

	"github.com/lei/jobtabs/internal/models"
)

// Source abstracts the remote job listing backend
type Source interface {
	// FetchJobs performs a single request for the full job list.
	// The returned slice keeps the server's order.
	FetchJobs(ctx context.Context) ([]models.Job, error)
}
