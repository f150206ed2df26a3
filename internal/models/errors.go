package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for unknown county ids.
var ErrNotFound = errors.New("county not found")

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SourceError reports an external collaborator that failed or timed out
// after retries were exhausted. It always names the failed source so partial
// aggregation failures are never silently absorbed into a default score.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NotEligibleError reports a burn-protocol initiation attempted for a county
// whose latest assessment is below the eligibility threshold.
type NotEligibleError struct {
	CountyID string
	Score    int
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("county %s not eligible for burn protocol: score %d below threshold", e.CountyID, e.Score)
}
