package llm

import (
	"errors"
	"fmt"
)

// ErrChainExhausted is returned by TryInvoke when every candidate model
// failed.
var ErrChainExhausted = errors.New("all candidate models failed")

// FailureKind classifies why a model attempt failed. Every kind continues
// the fallback chain; the kind only drives logging and diagnostics.
type FailureKind string

const (
	// FailureResourceExhausted marks out-of-memory or quota failures.
	FailureResourceExhausted FailureKind = "resource_exhausted"
	// FailureNotFound marks a model that is not installed or unknown.
	FailureNotFound FailureKind = "not_found"
	// FailureOther covers every remaining failure.
	FailureOther FailureKind = "other"
)

// ModelUnavailableError records one failed model attempt.
type ModelUnavailableError struct {
	Model string
	Kind  FailureKind
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %s unavailable (%s): %v", e.Model, e.Kind, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}
