package source

import (
	"errors"
	"fmt"
)

// Common errors returned by graph-data sources.
var (
	// ErrNotFound indicates no snapshot exists for the requested paper.
	ErrNotFound = errors.New("paper not found")

	// ErrRateLimited indicates the server rejected the request for rate limiting.
	ErrRateLimited = errors.New("graph API rate limit exceeded")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from graph API")
)

// APIError represents an HTTP error from the graph API.
type APIError struct {
	StatusCode int
	Message    string
	PaperID    string // For context in paper-related errors
}

func (e *APIError) Error() string {
	if e.PaperID != "" {
		return fmt.Sprintf("graph API error (status %d): %s (paper: %s)", e.StatusCode, e.Message, e.PaperID)
	}
	return fmt.Sprintf("graph API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates a missing paper.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
