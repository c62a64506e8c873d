package domain

import (
	"errors"
	"fmt"
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session has expired")
)

// ErrorKind classifies an upstream failure. The classification happens once,
// in the upstream client, so callers branch on a typed kind instead of
// re-inspecting raw error shapes.
type ErrorKind int

const (
	// KindTransient covers network errors, timeouts and 5xx responses.
	// A transient failure must never evict a valid session.
	KindTransient ErrorKind = iota

	// KindUnauthorized is the backend's authoritative "you are logged out".
	KindUnauthorized

	// KindValidation is a rejected login or registration payload. The
	// session state is left untouched.
	KindValidation
)

// String returns the kind's log label
func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	default:
		return "transient"
	}
}

// APIError is a classified failure from the membership backend
type APIError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
}

// Unwrap exposes the underlying cause
func (e *APIError) Unwrap() error { return e.Err }

// Classify returns the kind of an upstream failure. Errors that did not come
// from the upstream client are treated as transient.
func Classify(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

// IsUnauthorized reports whether the backend explicitly rejected the session
// or credentials
func IsUnauthorized(err error) bool {
	return err != nil && Classify(err) == KindUnauthorized
}

// IsValidation reports whether the backend rejected the submitted payload
func IsValidation(err error) bool {
	return err != nil && Classify(err) == KindValidation
}
