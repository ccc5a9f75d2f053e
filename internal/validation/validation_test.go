package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/frontdesk/internal/errs"
	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createThing struct {
	Name  string `json:"name" validate:"required,notblank,max=10"`
	Email string `json:"email" validate:"omitempty,email"`
	Limit int    `query:"limit" validate:"min=1,max=100"`
}

func (r *createThing) Validate() error { return Struct(r) }

func (r *createThing) SetDefaults() { r.Limit = 100 }

type patchThing struct {
	Name  optional.Field[string] `json:"name"`
	Notes optional.Field[string] `json:"notes"`
}

func (r *patchThing) Validate() error {
	var check Checker
	CheckOptional(&check, "name", r.Name, "notblank,max=10", false)
	CheckOptional(&check, "notes", r.Notes, "max=5", true)
	return check.Err()
}

func bind(t *testing.T, method, target, body string, payload Validatable) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if d, ok := payload.(Defaulter); ok {
		d.SetDefaults()
	}
	return BindAndValidate(c, payload)
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	payload := &createThing{}
	err := bind(t, http.MethodPost, "/", `{"name":"clinic","email":"a@b.co"}`, payload)
	require.NoError(t, err)
	assert.Equal(t, "clinic", payload.Name)
	assert.Equal(t, 100, payload.Limit)
}

func TestBindAndValidate_FieldErrorsUseWireNames(t *testing.T) {
	err := bind(t, http.MethodPost, "/", `{"name":"   ","email":"nope"}`, &createThing{})
	httpErr := requireHTTPError(t, err)

	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "name", Error: "is required"})
	assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "email", Error: "must be a valid email address"})
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	err := bind(t, http.MethodPost, "/", `{"name":`, &createThing{})
	httpErr := requireHTTPError(t, err)
	assert.NotEmpty(t, httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_TypeMismatch(t *testing.T) {
	err := bind(t, http.MethodPost, "/", `{"name":42}`, &createThing{})
	requireHTTPError(t, err)
}

func TestBindAndValidate_QueryBoundsAndDefault(t *testing.T) {
	payload := &createThing{Name: "x"}
	err := bind(t, http.MethodGet, "/?limit=0", "", payload)
	httpErr := requireHTTPError(t, err)
	assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "limit", Error: "must be at least 1"})

	err = bind(t, http.MethodGet, "/?limit=101", "", &createThing{Name: "x"})
	httpErr = requireHTTPError(t, err)
	assert.Contains(t, httpErr.Errors, errs.FieldError{Field: "limit", Error: "must not exceed 100"})
}

func TestCheckOptional(t *testing.T) {
	t.Run("absent fields pass", func(t *testing.T) {
		require.NoError(t, bind(t, http.MethodPatch, "/", `{}`, &patchThing{}))
	})

	t.Run("null on nullable passes", func(t *testing.T) {
		require.NoError(t, bind(t, http.MethodPatch, "/", `{"notes":null}`, &patchThing{}))
	})

	t.Run("null on required field fails", func(t *testing.T) {
		httpErr := requireHTTPError(t, bind(t, http.MethodPatch, "/", `{"name":null}`, &patchThing{}))
		assert.Equal(t, []errs.FieldError{{Field: "name", Error: "cannot be null"}}, httpErr.Errors)
	})

	t.Run("present values are checked", func(t *testing.T) {
		httpErr := requireHTTPError(t, bind(t, http.MethodPatch, "/", `{"name":"","notes":"too long"}`, &patchThing{}))
		assert.Equal(t, []errs.FieldError{
			{Field: "name", Error: "is required"},
			{Field: "notes", Error: "must not exceed 5 characters"},
		}, httpErr.Errors)
	})
}

func TestUUIDTag(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"7b0c6c9e-5f4e-4f43-9a55-0f0c4b0a2f11", true},
		{"7B0C6C9E-5F4E-4F43-9A55-0F0C4B0A2F11", true},
		{"7b0c6c9e5f4e4f439a550f0c4b0a2f11", false},
		{"{7b0c6c9e-5f4e-4f43-9a55-0f0c4b0a2f11}", false},
		{"not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var check Checker
			check.Var("id", tt.value, "uuid")
			assert.Equal(t, tt.valid, check.Err() == nil)
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2030-01-15T10:00:00Z", time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2030-01-15T12:00:00+02:00", time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2030-01-15T10:00:00.5Z", time.Date(2030, 1, 15, 10, 0, 0, 500000000, time.UTC)},
		{"2030-01-15T10:00:00", time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2030-01-15T10:00", time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2030-01-15", time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	for _, bad := range []string{"", "tomorrow", "15/01/2030", "2030-13-01"} {
		_, err := ParseTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalTime(t *testing.T) {
	got, err := ParseOptionalTime("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalTime("2030-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)
}
