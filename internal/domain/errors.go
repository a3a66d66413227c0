package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion pipeline. Handlers map these to HTTP
// status codes; callers test with errors.Is.
var (
	// ErrInvalidLink means the URL could not be parsed or its host is not a
	// supported platform. User input error, never retried.
	ErrInvalidLink = errors.New("invalid or unsupported link")

	// ErrCredentialsMissing means a platform credential could not be
	// obtained. Fatal configuration error, never retried.
	ErrCredentialsMissing = errors.New("platform credentials missing")

	// ErrMetadataNotFound means the source platform lookup returned no
	// results for the parsed identifier.
	ErrMetadataNotFound = errors.New("no metadata found for link")

	// ErrNoMatchFound means every generated query was exhausted without an
	// acceptable candidate on the target platform.
	ErrNoMatchFound = errors.New("no match found")
)

// ExternalAPIError wraps a network or HTTP-level failure from a platform
// API, keeping the query that triggered it. Individual search failures are
// logged and swallowed so the pipeline can try the next query; the error
// only surfaces when the whole conversion comes up empty.
type ExternalAPIError struct {
	Platform   Platform
	StatusCode int
	Query      string
	Err        error
}

func (e *ExternalAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API returned status %d (query %q)", e.Platform, e.StatusCode, e.Query)
	}
	return fmt.Sprintf("%s API call failed (query %q): %v", e.Platform, e.Query, e.Err)
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}
