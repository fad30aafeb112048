package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) utils.Problem {
	t.Helper()
	var p utils.Problem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	return p
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "not found",
			err:        services.ErrMovieNotFound,
			wantStatus: http.StatusNotFound,
			wantTitle:  "not_found",
			wantDetail: "movie not found",
		},
		{
			name:       "wrapped not found keeps the domain message",
			err:        services.WrapRepository(fmt.Errorf("role 1: %w", repositories.ErrNotFound), services.ErrRoleNotFound, "x"),
			wantStatus: http.StatusNotFound,
			wantTitle:  "not_found",
			wantDetail: "role not found",
		},
		{
			name:       "validation",
			err:        services.ErrNothingToUpdate,
			wantStatus: http.StatusBadRequest,
			wantTitle:  "bad_request",
			wantDetail: "no updatable field provided",
		},
		{
			name:       "conflict",
			err:        services.NewDomainError(services.ErrorTypeConflict, "already exists", nil),
			wantStatus: http.StatusConflict,
			wantTitle:  "conflict",
			wantDetail: "already exists",
		},
		{
			name:       "internal hides the cause",
			err:        services.WrapInternal("failed to list movies", errors.New("pq: password authentication failed")),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "internal_error",
			wantDetail: "An internal error occurred.",
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "internal_error",
			wantDetail: "An unexpected error occurred.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/movies/1", nil)
			w := httptest.NewRecorder()

			HandleServiceError(w, req, tt.err, zap.NewNop())

			assert.Equal(t, tt.wantStatus, w.Code)
			p := decodeProblem(t, w)
			assert.False(t, p.Success)
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, tt.wantDetail, p.Detail)
			assert.Equal(t, "/movies/1", p.Instance)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestHandleServiceError_DetailsAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	req := httptest.NewRequest(http.MethodGet, "/movies", nil)

	w := httptest.NewRecorder()
	HandleServiceError(w, req, services.ErrPageNotFound.WithDetail("page", 4), zap.New(core))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, logs.Len(), "client errors are not logged as errors")

	w = httptest.NewRecorder()
	HandleServiceError(w, req, services.ErrInvalidPage.WithDetail("page", -1), zap.New(core))
	p := decodeProblem(t, w)
	assert.Equal(t, float64(-1), p.Fields["page"])

	w = httptest.NewRecorder()
	HandleServiceError(w, req, services.WrapInternal("db", errors.New("down")), zap.New(core))
	require.Equal(t, 1, logs.FilterMessage("internal server error").Len())
}

func TestHandleServiceError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	HandleServiceError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil, zap.NewNop())
	assert.Equal(t, 0, w.Body.Len())
}

func TestHandleValidationError(t *testing.T) {
	t.Run("struct validation lists fields", func(t *testing.T) {
		err := utils.ValidateStruct(&CreateActorRequest{Name: "Ana"})
		require.Error(t, err)

		w := httptest.NewRecorder()
		HandleValidationError(w, httptest.NewRequest(http.MethodPost, "/actors", nil), err, zap.NewNop())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, "Validation failed", p.Detail)
		assert.Contains(t, p.Fields, "gender")
		assert.Contains(t, p.Fields, "age")
	})

	t.Run("plain error uses its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleValidationError(w, httptest.NewRequest(http.MethodPost, "/actors", nil), errors.New("invalid request body"), zap.NewNop())

		p := decodeProblem(t, w)
		assert.Equal(t, "invalid request body", p.Detail)
		assert.Empty(t, p.Fields)
	})
}
