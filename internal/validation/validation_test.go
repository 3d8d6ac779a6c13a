package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncRequest struct {
	ID     int    `param:"id" validate:"required,min=1"`
	Season int    `json:"season" validate:"omitempty,min=1900,max=2100"`
	Status string `json:"status" validate:"omitempty,oneof=NS FT"`
}

func (r *syncRequest) Validate() error { return Struct(r) }

func bind(t *testing.T, body string, id string) (*syncRequest, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id)

	out := &syncRequest{}
	return out, BindAndValidate(c, out)
}

func TestBindAndValidate(t *testing.T) {
	req, err := bind(t, `{"season":2024}`, "39")
	require.NoError(t, err)
	assert.Equal(t, 39, req.ID)
	assert.Equal(t, 2024, req.Season)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	_, err := bind(t, `{"season":1700,"status":"LIVE"}`, "39")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "season", Error: "must be at least 1900"},
		{Field: "status", Error: "must be one of: NS FT"},
	}, httpErr.Errors)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	_, err := bind(t, `{"season":`, "39")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Nil(t, httpErr.Errors)
}

func TestCustomValidationErrors(t *testing.T) {
	msg, fields := extractValidationError(CustomValidationErrors{{Field: "id", Message: "is required"}})
	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{{Field: "id", Error: "is required"}}, fields)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.False(t, IsValidUUID("39"))
}
