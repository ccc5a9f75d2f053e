package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/frontdesk/internal/config"
	"github.com/deppfellow/frontdesk/internal/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, handlerErr error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	s := newTestServer(&config.RateLimitConfig{})
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.GET("/fail", func(c echo.Context) error {
		return handlerErr
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandler_DomainErrors(t *testing.T) {
	rec, body := serveError(t, errs.NewRuleViolation("PROVIDER_INACTIVE", "Provider is not active and cannot accept bookings"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PROVIDER_INACTIVE", body.Code)
	assert.Equal(t, "Provider is not active and cannot accept bookings", body.Message)
	assert.True(t, body.Override)

	id := uuid.New()
	rec, body = serveError(t, errors.Wrap(errs.NewNotFound("Booking", id), "handler"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BOOKING_NOT_FOUND", body.Code)
	assert.Equal(t, "Booking with ID "+id.String()+" not found", body.Message)
}

func TestGlobalErrorHandler_HTTPErrorPassesThrough(t *testing.T) {
	code := "CUSTOM"
	rec, body := serveError(t, errs.NewBadRequestError("bad", true, &code, []errs.FieldError{{Field: "limit", Error: "must not exceed 100"}}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CUSTOM", body.Code)
	assert.Len(t, body.Errors, 1)
}

func TestGlobalErrorHandler_StoreErrors(t *testing.T) {
	rec, body := serveError(t, errors.Wrap(&pgconn.PgError{
		Code:      "23503",
		Message:   `update or delete on table "providers" violates foreign key constraint "bookings_provider_id_fkey" on table "bookings"`,
		TableName: "bookings",
	}, "delete provider"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PROVIDER_IN_USE", body.Code)
	assert.Equal(t, "This Provider is still referenced by other records", body.Message)

	rec, body = serveError(t, errors.New("connection reset by peer"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body.Message)
}

func TestGlobalErrorHandler_UnknownRoute(t *testing.T) {
	s := newTestServer(&config.RateLimitConfig{})
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}
