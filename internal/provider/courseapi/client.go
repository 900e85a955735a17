package courseapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/provider"
	"github.com/lei/jobtabs/pkg/logger"
)

// DefaultURL is the endpoint serving the job list
const DefaultURL = "https://www.course-api.com/react-tabs-project"

// Client handles HTTP communication with the course API
type Client struct {
	url        string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new course API client.
// A zero timeout leaves the request bounded only by its context.
func NewClient(url string, timeout time.Duration, log *logger.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// URL returns the endpoint the client talks to
func (c *Client) URL() string {
	return c.url
}

// ListJobs issues one GET for the job list. There is no retry.
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	c.logger.Debug("source: http request",
		"method", http.MethodGet,
		"url", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.logger.Error("source: failed to create request", "error", err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("source: http request failed",
			"url", c.url,
			"error", err)
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	if resp == nil {
		return nil, provider.ErrNoResponse
	}
	defer resp.Body.Close()

	c.logger.Debug("source: http response",
		"url", c.url,
		"status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	return decodeJobs(resp.Body)
}
