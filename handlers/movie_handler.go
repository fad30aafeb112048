package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/upb/casting-agency/auth"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/services/casting"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// CreateMovieRequest represents a request to create a movie.
// Release is a unix timestamp in seconds.
type CreateMovieRequest struct {
	Name     string   `json:"name" validate:"required,max=150"`
	PhotoURL string   `json:"photoUrl" validate:"omitempty,url"`
	Release  *int64   `json:"release" validate:"required"`
	Genres   []string `json:"genres"`
}

// UpdateMovieRequest represents a partial movie update
type UpdateMovieRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,max=150"`
	PhotoURL *string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
	Release  *int64    `json:"release,omitempty"`
	Genres   *[]string `json:"genres,omitempty"`
}

// SearchMoviesRequest represents a movie search
type SearchMoviesRequest struct {
	SearchTerm string `json:"searchTerm" validate:"required"`
}

// MovieResponse represents a movie in API responses
type MovieResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoUrl"`
	Release   int64     `json:"release"`
	Genres    []string  `json:"genres"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// MovieService defines the movie operations the handler needs
type MovieService interface {
	List(ctx context.Context, page int) ([]*models.Movie, error)
	Search(ctx context.Context, term string) ([]*models.Movie, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	ListActors(ctx context.Context, id uuid.UUID) ([]*models.Actor, error)
	Create(ctx context.Context, in casting.CreateMovieInput) (*models.Movie, error)
	Update(ctx context.Context, id uuid.UUID, in casting.UpdateMovieInput) (*models.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovieHandler handles movie-related HTTP requests
type MovieHandler struct {
	service MovieService
	logger  *zap.Logger
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(service MovieService, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /movies
func (h *MovieHandler) HandleList(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	movies, err := h.service.List(r.Context(), page)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, moviesToResponse(movies))
}

// HandleSearch handles POST /movies/search
func (h *MovieHandler) HandleSearch(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	var req SearchMoviesRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	movies, err := h.service.Search(r.Context(), req.SearchTerm)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, moviesToResponse(movies))
}

// HandleGet handles GET /movies/{id}
func (h *MovieHandler) HandleGet(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	movie, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, movieToResponse(movie))
}

// HandleListActors handles GET /movies/{id}/actors
func (h *MovieHandler) HandleListActors(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	actors, err := h.service.ListActors(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, actorsToResponse(actors))
}

// HandleCreate handles POST /movies
func (h *MovieHandler) HandleCreate(claims *auth.Claims, w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	movie, err := h.service.Create(r.Context(), casting.CreateMovieInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Release:  time.Unix(*req.Release, 0),
		Genres:   req.Genres,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info("movie created via API",
		zap.String("request_id", requestID(r)),
		zap.String("movie_id", movie.ID.String()),
		zap.String("subject", claims.Subject))

	if err := utils.WriteCreated(w, movieToResponse(movie)); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// HandleUpdate handles PATCH /movies/{id}
func (h *MovieHandler) HandleUpdate(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	var req UpdateMovieRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	in := casting.UpdateMovieInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Genres:   req.Genres,
	}
	if req.Release != nil {
		release := time.Unix(*req.Release, 0)
		in.Release = &release
	}

	movie, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, movieToResponse(movie))
}

// HandleDelete handles DELETE /movies/{id}
func (h *MovieHandler) HandleDelete(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, DeletedResponse{Deleted: id})
}

func (h *MovieHandler) writeOK(w http.ResponseWriter, data interface{}) {
	if err := utils.WriteOK(w, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

func movieToResponse(m *models.Movie) MovieResponse {
	return MovieResponse{
		ID:        m.ID,
		Name:      m.Name,
		PhotoURL:  m.PhotoURL,
		Release:   m.Release.Unix(),
		Genres:    m.Genres,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
}

func moviesToResponse(movies []*models.Movie) []MovieResponse {
	responses := make([]MovieResponse, len(movies))
	for i, m := range movies {
		responses[i] = movieToResponse(m)
	}
	return responses
}
