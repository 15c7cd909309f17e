package provider

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the vendor returned 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUpstream indicates the vendor is down, unreachable or returned a 5xx.
type ErrUpstream struct {
	Err error
}

func (e *ErrUpstream) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// ErrRejected indicates the vendor refused the request (4xx other than 429).
// It is never retried.
type ErrRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("LLM provider rejected request (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status from a vendor SDK error onto a typed error.
func classifyStatus(status int, err error) error {
	switch {
	case status == 429:
		return &ErrRateLimit{Err: err}
	case status >= 500 || status == 0:
		return &ErrUpstream{Err: err}
	default:
		return &ErrRejected{StatusCode: status, Err: err}
	}
}
