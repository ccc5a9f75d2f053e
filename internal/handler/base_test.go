package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/frontdesk/internal/errs"
	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_AllocatesFreshValue(t *testing.T) {
	template := &ListBookingsRequest{Status: "pending"}

	req := newRequest(template)
	require.NotSame(t, template, req)
	assert.Empty(t, req.Status)
}

func TestHandle_AppliesDefaultsPerRequest(t *testing.T) {
	e := echo.New()
	var seen []int

	h := Handle(Handler{}, func(c echo.Context, req *ListProvidersRequest) ([]int, error) {
		seen = append(seen, req.Limit)
		return []int{}, nil
	}, http.StatusOK, &ListProvidersRequest{})

	for _, target := range []string{"/providers?limit=5", "/providers"} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		require.NoError(t, h(c))
	}

	assert.Equal(t, []int{5, DefaultPageLimit}, seen)
}

func TestHandle_ValidationErrorStopsHandler(t *testing.T) {
	e := echo.New()
	called := false

	h := Handle(Handler{}, func(c echo.Context, req *BookingIDRequest) (string, error) {
		called = true
		return "", nil
	}, http.StatusOK, &BookingIDRequest{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/bookings/x", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("x")

	err := h(c)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.False(t, called)
}

func TestHandle_MissingSession(t *testing.T) {
	e := echo.New()
	h := NewProviderHandler(nil)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/providers", nil), httptest.NewRecorder())
	_, err := h.ListProviders(c, &ListProvidersRequest{Limit: 10})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestUpdateBookingRequest_Validate(t *testing.T) {
	id := "7b0c6c9e-5f4e-4f43-9a55-0f0c4b0a2f11"

	req := &UpdateBookingRequest{ID: id, Status: optional.Of("archived"), ScheduledAt: optional.Null[string]()}
	err := req.Validate()
	require.Error(t, err)

	req = &UpdateBookingRequest{ID: id, Status: optional.Of("completed"), ScheduledAt: optional.Of("2030-01-02T09:30:00Z")}
	require.NoError(t, req.Validate())

	patch := req.patch()
	require.True(t, patch.ScheduledAt.Present())
	assert.Equal(t, 2030, patch.ScheduledAt.Value.Year())
	assert.Equal(t, "completed", string(patch.Status.Value))
	assert.False(t, patch.ClientName.Set)
}

func TestUpdateBookingRequest_PatchWithoutSchedule(t *testing.T) {
	req := &UpdateBookingRequest{ID: "7B0C6C9E-5F4E-4F43-9A55-0F0C4B0A2F11", Notes: optional.Of("bring forms")}
	require.NoError(t, req.Validate())

	patch := req.patch()
	assert.False(t, patch.ScheduledAt.Set)
	assert.Equal(t, "bring forms", patch.Notes.Value)

	req = &UpdateBookingRequest{ID: "7b0c6c9e-5f4e-4f43-9a55-0f0c4b0a2f11", ScheduledAt: optional.Of("next tuesday")}
	require.Error(t, req.Validate())
}
