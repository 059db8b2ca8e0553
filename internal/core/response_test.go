// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestJSONErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, NotFoundError("document"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	envelope := decodeError(t, rec)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
	assert.Equal(t, "document not found", envelope.Error.Message)
}

func TestJSONErrorWrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("outer"), ForbiddenError(""))
	JSONError(rec, wrapped)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Error.Code)
}

func TestJSONErrorPlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	envelope := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	assert.NotContains(
		t,
		envelope.Error.Message,
		"boom",
		"internal details must not leak to clients",
	)
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a", "b"}, 2, 20, 41)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data     []string `json:"data"`
		Page     int      `json:"page"`
		PageSize int      `json:"page_size"`
		Total    int      `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))

	assert.Equal(t, []string{"a", "b"}, payload.Data)
	assert.Equal(t, 2, payload.Page)
	assert.Equal(t, 20, payload.PageSize)
	assert.Equal(t, 41, payload.Total)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
