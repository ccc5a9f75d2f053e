package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFound(t *testing.T) {
	id := uuid.MustParse("2f1b7c1e-8a4e-4c1a-9d59-6a3e7f0b5c21")

	err := NewNotFound("Booking", id)
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, "BOOKING_NOT_FOUND", err.Code)
	assert.Equal(t, "Booking with ID 2f1b7c1e-8a4e-4c1a-9d59-6a3e7f0b5c21 not found", err.Error())

	httpErr := err.HTTPError()
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "BOOKING_NOT_FOUND", httpErr.Code)
	assert.True(t, httpErr.Override)
}

func TestNewRuleViolation(t *testing.T) {
	err := NewRuleViolation("PROVIDER_INACTIVE", "Provider %s is not active", "City Clinic")
	assert.Equal(t, "Provider City Clinic is not active", err.Message)

	httpErr := err.HTTPError()
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PROVIDER_INACTIVE", httpErr.Code)
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", NewRuleViolation("BOOKING_NOT_IN_FUTURE", "Scheduled time must be in the future"))

	assert.True(t, IsKind(wrapped, KindRuleViolation))
	assert.False(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(fmt.Errorf("plain"), KindRuleViolation))
}

func TestHTTPErrorConstructors(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("bad", false, nil, nil, nil).Code)
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("gone", false, nil).Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", NewTooManyRequestsError("slow down").Code)

	internal := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "Internal Server Error", internal.Message)

	validation := ValidationError(fmt.Errorf("limit too large"))
	assert.Equal(t, "Validation failed: limit too large", validation.Message)
}

func TestHTTPError_WithMessage(t *testing.T) {
	code := "PROVIDER_IN_USE"
	original := NewBadRequestError("in use", true, &code, []FieldError{{Field: "id", Error: "in use"}}, nil)

	copied := original.WithMessage("still referenced")
	require.NotSame(t, original, copied)
	assert.Equal(t, "in use", original.Message)
	assert.Equal(t, "still referenced", copied.Message)
	assert.Equal(t, original.Code, copied.Code)
	assert.Equal(t, original.Errors, copied.Errors)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "METHOD_NOT_ALLOWED", MakeUpperCaseWithUnderscores("Method Not Allowed"))
}
