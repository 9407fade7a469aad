package animreview

import (
	"errors"
	"fmt"
)

// Pre-flight failures. All three are detected before any network call and are
// never retried.
var (
	ErrUnknownMode       = errors.New("animreview: unknown mode")
	ErrInvalidRange      = errors.New("animreview: invalid time range")
	ErrMissingCredential = errors.New("animreview: missing provider credential")
)

// ErrResponseShapeMismatch matches any ShapeError via errors.Is, so callers
// can detect shape failures without inspecting the field detail.
var ErrResponseShapeMismatch = errors.New("animreview: response shape mismatch")

// TransportError carries a provider-side failure back to the caller with
// enough detail to decide whether a manual retry is worth the cost. The
// library itself never retries.
type TransportError struct {
	Provider Provider
	Category string // "rate_limit", "timeout", or "api"
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("animreview: %s transport error (%s): %v", e.Provider, e.Category, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeError reports a structured reply that does not fit the declared
// response schema. Field names the offending field.
type ShapeError struct {
	Field string
	Want  string
	Got   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("animreview: response shape mismatch: field %q: want %s, got %s", e.Field, e.Want, e.Got)
}

func (e *ShapeError) Is(target error) bool { return target == ErrResponseShapeMismatch }
