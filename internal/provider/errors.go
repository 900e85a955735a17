package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResponse indicates the source returned nothing usable
	ErrNoResponse = errors.New("no response from job source")

	// ErrSourceUnavailable indicates the source is temporarily unavailable
	ErrSourceUnavailable = errors.New("job source temporarily unavailable")

	// ErrMalformedBody indicates the response body could not be decoded
	ErrMalformedBody = errors.New("malformed job source response")
)

// SourceError represents a non-success status returned by the source
type SourceError struct {
	Code    int
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("source error %d: %s", e.Code, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
