// Package fetcher retrieves and parses HTML pages with per-host rate
// limiting. Failures the pipeline tolerates (transport errors, non-200
// statuses) are reported as typed errors so callers can skip the affected
// unit of work instead of aborting the run.
package fetcher

import (
	"fmt"
)

// StatusError reports a non-200 response for a fetched page.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

// TransportError reports a network-level failure reaching a page.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
