package courseapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/provider"
)

// decodeJobs reads a JSON array of job records, keeping the server order.
// Only the array itself is checked; each record is mapped leniently.
func decodeJobs(body io.Reader) ([]models.Job, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, provider.ErrNoResponse
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformedBody, err)
	}

	// A literal null leaves the slice nil.
	if records == nil {
		return nil, provider.ErrNoResponse
	}

	jobs := make([]models.Job, 0, len(records))
	for _, record := range records {
		jobs = append(jobs, mapJob(record))
	}
	return jobs, nil
}

// mapJob decodes the known fields of one record. A field of an unexpected
// type is left at its zero value; a record that is not an object yields an
// empty job.
func mapJob(record json.RawMessage) models.Job {
	var fields map[string]json.RawMessage
	if json.Unmarshal(record, &fields) != nil {
		return models.Job{}
	}

	job := models.Job{
		ID:      stringField(fields["id"]),
		Title:   stringField(fields["title"]),
		Dates:   stringField(fields["dates"]),
		Company: stringField(fields["company"]),
	}

	var order float64
	if json.Unmarshal(fields["order"], &order) == nil {
		job.Order = int(order)
	}

	var duties []json.RawMessage
	if json.Unmarshal(fields["duties"], &duties) == nil {
		for _, duty := range duties {
			var s string
			if json.Unmarshal(duty, &s) == nil {
				job.Duties = append(job.Duties, s)
			}
		}
	}

	return job
}

// stringField returns a string value, or the literal text of a number
func stringField(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// parseError converts HTTP error responses to source errors
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return provider.ErrSourceUnavailable
	default:
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}

		if json.Unmarshal(body, &errResp) == nil {
			if errResp.Error != "" {
				return &provider.SourceError{Code: resp.StatusCode, Message: errResp.Error}
			}
			if errResp.Message != "" {
				return &provider.SourceError{Code: resp.StatusCode, Message: errResp.Message}
			}
		}

		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &provider.SourceError{
			Code:    resp.StatusCode,
			Message: message,
		}
	}
}
