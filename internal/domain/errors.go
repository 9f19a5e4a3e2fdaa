package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidFile    = errors.New("invalid file")
	ErrStaging        = errors.New("staging failed")
	ErrSchemaMismatch = errors.New("extraction result does not match schema")
)

// ProviderErrorKind groups provider failures for logging. Every kind maps to
// the same HTTP status at the boundary.
type ProviderErrorKind string

const (
	ProviderErrorAuth      ProviderErrorKind = "auth"
	ProviderErrorRejected  ProviderErrorKind = "rejected"
	ProviderErrorTimeout   ProviderErrorKind = "timeout"
	ProviderErrorTransport ProviderErrorKind = "transport"
	ProviderErrorJobFailed ProviderErrorKind = "job_failed"
	ProviderErrorMalformed ProviderErrorKind = "malformed"
	ProviderErrorUpstream  ProviderErrorKind = "upstream"
)

// ProviderError is a failure reported by, or while talking to, the
// extraction provider. Error returns the provider's own description.
type ProviderError struct {
	Kind       ProviderErrorKind
	Message    string
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError builds a ProviderError whose message is cause's text.
func NewProviderError(kind ProviderErrorKind, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Message: cause.Error(), Cause: cause}
}

// NewProviderErrorf builds a ProviderError from a formatted message.
func NewProviderErrorf(kind ProviderErrorKind, format string, args ...any) *ProviderError {
	return &ProviderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ProviderKind returns the kind of a wrapped ProviderError, if any.
func ProviderKind(err error) (ProviderErrorKind, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}
