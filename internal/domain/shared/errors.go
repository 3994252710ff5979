// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrExpired         = errors.New("expired")

	// Authorization errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Concurrency errors
	ErrOptimisticLock = errors.New("optimistic lock failure")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "member", "leaderboard", "attendance"
	Op      string // Operation that failed, e.g., "CheckIn", "GrantXP"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Member domain errors
var (
	ErrMemberNotFound      = NewDomainError("member", "Find", ErrNotFound, "member not found")
	ErrMemberAlreadyExists = NewDomainError("member", "Create", ErrAlreadyExists, "member already exists")
	ErrSessionNotFound     = NewDomainError("member", "FindSession", ErrUnauthenticated, "session not found")
	ErrSessionExpired      = NewDomainError("member", "CheckSession", ErrExpired, "session expired")
	ErrAdminRequired       = NewDomainError("member", "Authorize", ErrForbidden, "admin access required")
)

// Attendance domain errors
var (
	ErrAlreadyCheckedIn = NewDomainError("attendance", "CheckIn", ErrAlreadyExists, "already checked in")
	ErrNotCheckedIn     = NewDomainError("attendance", "CheckOut", ErrNotFound, "not checked in")
	ErrRecordClosed     = NewDomainError("attendance", "CheckOut", ErrInvalidState, "attendance record already closed")
)

// Gamification domain errors
var (
	ErrInvalidXPAmount = NewDomainError("gamification", "GrantXP", ErrInvalidInput, "xp amount must be positive")
	ErrBadgeNotFound   = NewDomainError("gamification", "Award", ErrNotFound, "badge not found")
)

// Music domain errors
var (
	ErrTrackNotFound = NewDomainError("music", "Find", ErrNotFound, "track not found")
)

// Gaming domain errors
var (
	ErrMatchNotFound   = NewDomainError("gaming", "Find", ErrNotFound, "match not found")
	ErrNotMatchOwner   = NewDomainError("gaming", "Start", ErrForbidden, "only the match creator or an admin may do this")
	ErrInvalidScore    = NewDomainError("gaming", "SubmitScore", ErrValueOutOfRange, "score must be between 0 and 999999")
	ErrMatchNotPending = NewDomainError("gaming", "Start", ErrStateTransition, "match is not pending")
)

// Leaderboard domain errors
var (
	ErrUnknownCategory  = NewDomainError("leaderboard", "Compute", ErrNotFound, "unknown leaderboard category")
	ErrUnknownPeriod    = NewDomainError("leaderboard", "Compute", ErrInvalidInput, "unknown leaderboard period")
	ErrSnapshotNotFound = NewDomainError("leaderboard", "FindSnapshot", ErrNotFound, "snapshot not found")
)

// External service errors
var (
	ErrIdentityUnavailable = NewDomainError("identity", "Exchange", ErrServiceUnavailable, "identity provider is unavailable")
	ErrIdentityRejected    = NewDomainError("identity", "Exchange", ErrUnauthenticated, "identity provider rejected the session")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsUnauthenticated checks if the error means the caller has no valid session.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrExpired)
}

// IsForbidden checks if the error is an authorization failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsRetryable checks if the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrOptimisticLock)
}
