package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/widget"
	"github.com/lei/jobtabs/pkg/logger"
)

var (
	// ErrNoJobSelected indicates the selected index points at no job
	ErrNoJobSelected = errors.New("no job at selected index")
)

// Service coordinates the HTTP layer and the widget
type Service struct {
	widget *widget.Widget
	logger *logger.Logger
}

// NewService creates a new service instance
func NewService(w *widget.Widget, log *logger.Logger) *Service {
	return &Service{
		widget: w,
		logger: log,
	}
}

// getLogger retrieves logger from context or falls back to service logger
func (s *Service) getLogger(ctx context.Context) *logger.Logger {
	if ctxLogger := logger.FromContext(ctx); ctxLogger != nil {
		return ctxLogger
	}
	return s.logger
}

// Snapshot returns the current view state
func (s *Service) Snapshot(ctx context.Context) widget.State {
	return s.widget.Snapshot()
}

// ListJobs returns the loaded jobs in server order
func (s *Service) ListJobs(ctx context.Context) []models.Job {
	return s.widget.Snapshot().Jobs
}

// CurrentJob returns the job at the selected index
func (s *Service) CurrentJob(ctx context.Context) (models.Job, int, error) {
	state := s.widget.Snapshot()
	job, ok := state.Current()
	if !ok {
		s.getLogger(ctx).Debug("service: selected index out of range",
			"selected", state.Selected,
			"job_count", len(state.Jobs))
		return models.Job{}, state.Selected, ErrNoJobSelected
	}
	return job, state.Selected, nil
}

// SelectJob sets the selected index and returns the resulting state
func (s *Service) SelectJob(ctx context.Context, index int) (widget.State, error) {
	logger := s.getLogger(ctx)

	logger.Debug("service: selecting job", "index", index)

	if err := s.widget.Select(index); err != nil {
		logger.Error("service: select failed", "index", index, "error", err)
		return widget.State{}, fmt.Errorf("select job: %w", err)
	}

	state := s.widget.Snapshot()
	if _, ok := state.Current(); !ok {
		logger.Warn("service: selected index has no job",
			"index", index,
			"job_count", len(state.Jobs))
	}
	return state, nil
}

// StreamStates writes one SSE "state" event per state change until ctx is
// done or the widget is unmounted
func (s *Service) StreamStates(ctx context.Context, writer io.Writer) error {
	logger := s.getLogger(ctx)

	states, cancel := s.widget.Subscribe()
	defer cancel()

	logger.Info("service: starting state stream")

	for {
		select {
		case <-ctx.Done():
			logger.Info("service: state stream closed by client")
			return nil
		case state, ok := <-states:
			if !ok {
				logger.Info("service: state stream ended, widget unmounted")
				return nil
			}
			data, err := json.Marshal(state)
			if err != nil {
				return fmt.Errorf("marshal state: %w", err)
			}
			if _, err := fmt.Fprintf(writer, "event: state\ndata: %s\n\n", data); err != nil {
				return err
			}
			if f, ok := writer.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

// HealthCheck reports the widget's phase and job count
func (s *Service) HealthCheck(ctx context.Context) map[string]interface{} {
	state := s.widget.Snapshot()

	health := map[string]interface{}{
		"status":    "healthy",
		"service":   "jobtabs",
		"mount_id":  s.widget.ID(),
		"phase":     state.Phase.String(),
		"job_count": len(state.Jobs),
	}
	if state.Loading() {
		health["status"] = "loading"
	}

	s.getLogger(ctx).Debug("health check completed", "status", health["status"])
	return health
}
