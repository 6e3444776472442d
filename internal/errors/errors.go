package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nf, ok := err.(*NotFoundError); ok {
		return nf, true
	}
	return nil, false
}

// ConflictError marks a precondition violated by concurrent progress elsewhere,
// e.g. an order that was already completed by another session.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	if fe, ok := err.(*ForbiddenError); ok {
		return fe, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	if ue, ok := err.(*UnauthorizedError); ok {
		return ue, true
	}
	return nil, false
}

// UnavailableError marks a transient store failure. Nothing was written; the
// caller may retry the same operation.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

func NewUnavailableError(message string, cause error) *UnavailableError {
	return &UnavailableError{Message: message, Cause: cause}
}

func IsUnavailableError(err error) (*UnavailableError, bool) {
	if ue, ok := err.(*UnavailableError); ok {
		return ue, true
	}
	return nil, false
}

// PartialCommitError marks a multi-record write whose rollback also failed.
// The store may be half-applied; manual reconciliation is required and the
// operation must never be auto-retried.
type PartialCommitError struct {
	Message string
	Cause   error
}

func (e *PartialCommitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PartialCommitError) Unwrap() error {
	return e.Cause
}

func NewPartialCommitError(message string, cause error) *PartialCommitError {
	return &PartialCommitError{Message: message, Cause: cause}
}

func IsPartialCommitError(err error) (*PartialCommitError, bool) {
	if pe, ok := err.(*PartialCommitError); ok {
		return pe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
