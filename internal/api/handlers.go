package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lei/jobtabs/internal/render"
	"github.com/lei/jobtabs/internal/service"
	"github.com/lei/jobtabs/internal/widget"
)

// Handlers contains HTTP handler functions
type Handlers struct {
	service *service.Service
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// Health handles health check requests
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.HealthCheck(r.Context()))
}

// Page handles GET /, the rendered tab view
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())
	state := h.service.Snapshot(r.Context())

	var buf bytes.Buffer
	if err := render.HTML(&buf, state); err != nil {
		if logger != nil {
			logger.Error("failed to render page", "error", err)
		}
		respondError(w, r, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// SelectForm handles POST /select from the rendered buttons
func (h *Handlers) SelectForm(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	index, ok := parseIndexParam(r.FormValue("index"))
	if !ok {
		if logger != nil {
			logger.Warn("invalid index form value", "index", r.FormValue("index"))
		}
		respondError(w, r, http.StatusBadRequest, "index must be an integer")
		return
	}

	if _, err := h.service.SelectJob(r.Context(), index); err != nil {
		handleServiceError(w, r, err)
		return
	}

	// Relative so the view still works when mounted under a prefix
	w.Header().Set("Location", "./")
	w.WriteHeader(http.StatusSeeOther)
}

// TextView handles GET /view.txt
func (h *Handlers) TextView(w http.ResponseWriter, r *http.Request) {
	state := h.service.Snapshot(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(render.Text(state)))
}

// GetState handles GET /v1/state
func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	state := h.service.Snapshot(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"state": state,
	})
}

// ListJobs handles GET /v1/jobs
func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())
	search := r.URL.Query().Get("search")

	jobs := FilterJobs(h.service.ListJobs(r.Context()), search)

	if logger != nil {
		logger.Debug("jobs listed", "search", search, "count", len(jobs))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs": jobs,
	})
}

// CurrentJob handles GET /v1/jobs/current
func (h *Handlers) CurrentJob(w http.ResponseWriter, r *http.Request) {
	job, index, err := h.service.CurrentJob(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"index": index,
		"job":   job,
	})
}

// Select handles PUT /v1/selection
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	var req struct {
		Index *int `json:"index"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		if logger != nil {
			logger.Warn("invalid request body", "error", err)
		}
		respondError(w, r, http.StatusBadRequest, "invalid request body, expected {\"index\": <int>}")
		return
	}

	state, err := h.service.SelectJob(r.Context(), *req.Index)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if logger != nil {
		logger.Info("selection changed", "index", *req.Index)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"state": state,
	})
}

// StreamEvents handles GET /v1/events
func (h *Handlers) StreamEvents(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		if logger != nil {
			logger.Error("streaming not supported by response writer")
		}
		respondError(w, r, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// The stream outlives the server's WriteTimeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && logger != nil {
		logger.Debug("could not clear write deadline", "error", err)
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	requestID := GetRequestID(r.Context())
	fmt.Fprintf(w, "event: connected\ndata: {\"request_id\":\"%s\"}\n\n", requestID)
	flusher.Flush()

	if err := h.service.StreamStates(r.Context(), w); err != nil {
		// Headers are already sent; log and emit a best-effort error event
		if logger != nil {
			logger.Error("streaming error occurred",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		fmt.Fprintf(w, "event: error\ndata: {\"message\":\"stream error\",\"request_id\":\"%s\"}\n\n", requestID)
		flusher.Flush()
		return
	}

	if logger != nil {
		logger.Info("event stream completed")
	}
	flusher.Flush()
}

// respondError writes a JSON error response with logging
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger := GetLogger(r.Context())
	requestID := GetRequestID(r.Context())

	if logger != nil {
		logger.Error("returning error response",
			"status", status,
			"message", message,
			"request_id", requestID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message":    message,
			"code":       status,
			"request_id": requestID,
		},
	})
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := GetLogger(r.Context())

	if logger != nil {
		logger.Error("service error occurred",
			"error", err.Error(),
			"error_type", fmt.Sprintf("%T", err))
	}

	switch {
	case errors.Is(err, service.ErrNoJobSelected):
		respondError(w, r, http.StatusNotFound, "no job at selected index")
	case errors.Is(err, widget.ErrUnmounted):
		respondError(w, r, http.StatusServiceUnavailable, "widget unmounted")
	default:
		respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
