package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the store hash or access token is not configured
	ErrMissingCredentials = errors.New("missing STORE_HASH or ACCESS_TOKEN")

	// ErrInvalidConfig is returned when a configuration value cannot be used
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRankingMode is returned for a ranking mode outside RAW, WEIGHTED, KOFN
	ErrInvalidRankingMode = errors.New("invalid ranking mode")

	// ErrUpstreamFailure is returned when a catalog API request fails
	ErrUpstreamFailure = errors.New("catalog API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrBrandNotFound is returned when a brand is absent from the artifact
	ErrBrandNotFound = errors.New("brand not found")
)

// UpstreamError carries the response of a failed catalog API call
type UpstreamError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Unwrap lets callers match any upstream error with errors.Is(err, ErrUpstreamFailure)
func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamFailure
}
