package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) Problem {
	t.Helper()
	var p Problem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	return p
}

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusOK, map[string]string{"message": "test"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteOK(w, map[string]string{"result": "success"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SuccessResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	dataMap := response.Data.(map[string]interface{})
	assert.Equal(t, "success", dataMap["result"])
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteCreated(w, map[string]string{"id": "123"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response SuccessResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
}

func TestWriteProblem(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteProblem(w, http.StatusUnauthorized, "token_expired", "Token expired.", "/movies")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, false, raw["success"])
	assert.Equal(t, float64(401), raw["status"])
	assert.Equal(t, "about:blank", raw["type"])
	assert.Equal(t, "token_expired", raw["title"])
	assert.Equal(t, "Token expired.", raw["detail"])
	assert.Equal(t, "/movies", raw["instance"])
	assert.NotContains(t, raw, "fields")
}

func TestWriteProblem_Defaults(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteProblem(w, http.StatusServiceUnavailable, "", "down", ""))

	p := decodeProblem(t, w)
	assert.Equal(t, "service_unavailable", p.Title)
	assert.Equal(t, ProblemType, p.Instance)
}

func TestProblemHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/actors/42", nil)

	tests := []struct {
		name       string
		write      func(w http.ResponseWriter) error
		wantStatus int
		wantTitle  string
		wantDetail string
	}{
		{
			name: "bad request",
			write: func(w http.ResponseWriter) error {
				return WriteBadRequest(w, req, "Validation failed", map[string]interface{}{"name": "name is required"})
			},
			wantStatus: http.StatusBadRequest,
			wantTitle:  "bad_request",
			wantDetail: "Validation failed",
		},
		{
			name:       "not found default detail",
			write:      func(w http.ResponseWriter) error { return WriteNotFound(w, req, "") },
			wantStatus: http.StatusNotFound,
			wantTitle:  "not_found",
			wantDetail: "Resource not found.",
		},
		{
			name:       "conflict",
			write:      func(w http.ResponseWriter) error { return WriteConflict(w, req, "already cast") },
			wantStatus: http.StatusConflict,
			wantTitle:  "conflict",
			wantDetail: "already cast",
		},
		{
			name:       "unprocessable",
			write:      func(w http.ResponseWriter) error { return WriteUnprocessable(w, req, "cannot process") },
			wantStatus: http.StatusUnprocessableEntity,
			wantTitle:  "unprocessable",
			wantDetail: "cannot process",
		},
		{
			name:       "internal",
			write:      func(w http.ResponseWriter) error { return WriteInternalServerError(w, req, "") },
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "internal_error",
			wantDetail: "Internal server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, tt.write(w))

			assert.Equal(t, tt.wantStatus, w.Code)
			p := decodeProblem(t, w)
			assert.False(t, p.Success)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, tt.wantDetail, p.Detail)
			assert.Equal(t, "/actors/42", p.Instance)
		})
	}
}
