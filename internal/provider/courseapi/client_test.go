package courseapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/provider"
	"github.com/lei/jobtabs/pkg/logger"
	"github.com/stretchr/testify/require"
)

const sampleBody = `[
  {"id":"recAGJfiU4CeaV0HL","order":3,"title":"Full Stack Web Developer","dates":"December 2015 - Present","duties":["Tote bag sartorial mlkshk","Typewriter lumbersexual"],"company":"TOMMY"},
  {"id":"recIL6mJNfWObonls","order":2,"title":"Front-End Engineer","dates":"May 2015 - December 2015","duties":["Hashtag drinking vinegar"],"company":"BIGDROP","extra":true}
]`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListJobs(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, sampleBody)
	client := NewClient(srv.URL, 0, logger.Discard())

	jobs, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "TOMMY", jobs[0].Company)
	require.Equal(t, 3, jobs[0].Order)
	require.Len(t, jobs[0].Duties, 2)
	require.Equal(t, "BIGDROP", jobs[1].Company)
}

func TestClient_ListJobs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		code    int
	}{
		{"empty array is fine", http.StatusOK, `[]`, nil, 0},
		{"null body", http.StatusOK, `null`, provider.ErrNoResponse, 0},
		{"empty body", http.StatusOK, ``, provider.ErrNoResponse, 0},
		{"not json", http.StatusOK, `<html>`, provider.ErrMalformedBody, 0},
		{"object not array", http.StatusOK, `{"jobs":[]}`, provider.ErrMalformedBody, 0},
		{"trailing data", http.StatusOK, `[] trailing`, provider.ErrMalformedBody, 0},
		{"second value", http.StatusOK, `[][]`, provider.ErrMalformedBody, 0},
		{"unavailable", http.StatusServiceUnavailable, ``, provider.ErrSourceUnavailable, 0},
		{"not found", http.StatusNotFound, `{"error":"no such project"}`, nil, http.StatusNotFound},
		{"server error", http.StatusInternalServerError, `boom`, nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			_, err := NewClient(srv.URL, 0, logger.Discard()).ListJobs(context.Background())

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.code != 0:
				var srcErr *provider.SourceError
				require.True(t, errors.As(err, &srcErr), "want SourceError, got %v", err)
				require.Equal(t, tt.code, srcErr.Code)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestClient_ListJobs_MixedRecords(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, jobs []models.Job)
	}{
		{
			name: "numeric and string ids",
			body: `[{"id":1,"company":"A"},{"id":"b","company":"B"}]`,
			check: func(t *testing.T, jobs []models.Job) {
				require.Equal(t, "1", jobs[0].ID)
				require.Equal(t, "A", jobs[0].Company)
				require.Equal(t, "b", jobs[1].ID)
			},
		},
		{
			name: "duties as a string",
			body: `[{"company":"A","duties":"one duty"},{"company":"B","duties":["x",2,"y"]}]`,
			check: func(t *testing.T, jobs []models.Job) {
				require.Empty(t, jobs[0].Duties)
				require.Equal(t, "A", jobs[0].Company)
				require.Equal(t, []string{"x", "y"}, jobs[1].Duties)
			},
		},
		{
			name: "order as a string",
			body: `[{"order":"3","title":"Dev"},{"order":2}]`,
			check: func(t *testing.T, jobs []models.Job) {
				require.Equal(t, 0, jobs[0].Order)
				require.Equal(t, "Dev", jobs[0].Title)
				require.Equal(t, 2, jobs[1].Order)
			},
		},
		{
			name: "records that are not objects",
			body: `[42,null,{"company":"C"}]`,
			check: func(t *testing.T, jobs []models.Job) {
				require.Equal(t, models.Job{}, jobs[0])
				require.Equal(t, models.Job{}, jobs[1])
				require.Equal(t, "C", jobs[2].Company)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &records))

			srv := newTestServer(t, http.StatusOK, tt.body)
			jobs, err := NewClient(srv.URL, 0, logger.Discard()).ListJobs(context.Background())
			require.NoError(t, err)
			require.Len(t, jobs, len(records))
			tt.check(t, jobs)
		})
	}
}

func TestClient_ParseErrorMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, `{"error":"no such project"}`)
	_, err := NewClient(srv.URL, 0, logger.Discard()).ListJobs(context.Background())

	var srcErr *provider.SourceError
	require.ErrorAs(t, err, &srcErr)
	require.Equal(t, "no such project", srcErr.Message)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond, logger.Discard()).ListJobs(context.Background())
	require.Error(t, err)
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, sampleBody)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, 0, logger.Discard()).ListJobs(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_DefaultURL(t *testing.T) {
	require.Equal(t, DefaultURL, NewClient("", 0, logger.Discard()).URL())
}

func TestAdapter_FetchJobs(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, sampleBody)
	adapter := NewAdapter(&Config{URL: srv.URL}, logger.Discard())

	jobs, err := adapter.FetchJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	bad := newTestServer(t, http.StatusOK, `nope`)
	_, err = NewAdapter(&Config{URL: bad.URL}, logger.Discard()).FetchJobs(context.Background())
	require.ErrorIs(t, err, provider.ErrMalformedBody)
}
