package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type tapForm struct {
	Username string `json:"username" validate:"required"`
}

func TestValidateJSONRejectsWrongContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(`{"username":"player1"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	var dst tapForm
	err := ValidateJSON(rec, req, &dst)
	assert.ErrorIs(t, err, errValidation)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestValidateJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var dst tapForm
	err := ValidateJSON(rec, req, &dst)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateJSONRunsStructValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var dst tapForm
	err := ValidateJSON(rec, req, &dst)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username is required")
}

func TestValidateJSONAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(`{"username":"player1"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()

	var dst tapForm
	assert.NoError(t, ValidateJSON(rec, req, &dst))
	assert.Equal(t, "player1", dst.Username)
}
