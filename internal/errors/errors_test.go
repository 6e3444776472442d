package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestNotFoundError_ErrorInterface(t *testing.T) {
	var err error = NewNotFoundError("entity not found")
	assert.NotNil(t, err)
	assert.Equal(t, "entity not found", err.Error())
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "quantity", Message: "quantity must be positive"},
		{Field: "material", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestConflictError_Predicate(t *testing.T) {
	err := NewConflictError("order already completed")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "order already completed", ce.Message)

	_, ok = IsConflictError(errors.New("other"))
	assert.False(t, ok)
}

func TestForbiddenError_Predicate(t *testing.T) {
	err := NewForbiddenError("vendor not approved")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "vendor not approved", fe.Message)
}

func TestUnauthorizedError_Predicate(t *testing.T) {
	err := NewUnauthorizedError("invalid code")

	ue, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid code", ue.Message)
}

func TestUnavailableError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUnavailableError("store unavailable", cause)

	ue, ok := IsUnavailableError(err)
	assert.True(t, ok)
	assert.Contains(t, ue.Error(), "store unavailable")
	assert.Contains(t, ue.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestPartialCommitError_WrapsCause(t *testing.T) {
	cause := errors.New("rollback failed")
	err := NewPartialCommitError("commit left partial state", cause)

	pe, ok := IsPartialCommitError(err)
	assert.True(t, ok)
	assert.Contains(t, pe.Error(), "commit left partial state")
	assert.True(t, errors.Is(err, cause))

	_, ok = IsPartialCommitError(NewUnavailableError("x", nil))
	assert.False(t, ok)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
