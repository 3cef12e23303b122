package services

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyMissing means the completion client was built without a
	// credential. Fail fast, nothing to retry.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY is not set")

	// ErrProfileNotFound means the user has no intake record.
	ErrProfileNotFound = errors.New("no intake profile found for user")

	// ErrPlanNotFound means no ration plan matched the update request.
	ErrPlanNotFound = errors.New("no ration plan found for user")

	// ErrInvalidResponse means the completion API returned text that is not
	// parseable JSON. Callers surface the raw text instead of persisting.
	ErrInvalidResponse = errors.New("response is not valid JSON")
)

// UpstreamError is a completion API failure, propagated unmodified.
// Retries are deliberately not implemented.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion api error (%d): %s", e.StatusCode, e.Body)
}
