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

// CreateActorRequest represents a request to create an actor
type CreateActorRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
	Gender   string `json:"gender" validate:"required,max=50"`
	Age      int    `json:"age" validate:"required,gt=0"`
}

// UpdateActorRequest represents a partial actor update
type UpdateActorRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=150"`
	PhotoURL *string `json:"photoUrl,omitempty" validate:"omitempty,url"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,max=50"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,gt=0"`
}

// SearchActorsRequest represents an actor search. At least one criterion is required.
type SearchActorsRequest struct {
	SearchName   string `json:"searchName" validate:"required_without_all=SearchGender SearchAge"`
	SearchGender string `json:"searchGender"`
	SearchAge    int    `json:"searchAge" validate:"gte=0"`
}

// ActorResponse represents an actor in API responses
type ActorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoUrl"`
	Gender    string    `json:"gender"`
	Age       int       `json:"age"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// ActorService defines the actor operations the handler needs
type ActorService interface {
	List(ctx context.Context, page int) ([]*models.Actor, error)
	Search(ctx context.Context, filter models.ActorFilter) ([]*models.Actor, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Actor, error)
	ListRoles(ctx context.Context, id uuid.UUID) ([]*models.Role, error)
	Create(ctx context.Context, in casting.CreateActorInput) (*models.Actor, error)
	Update(ctx context.Context, id uuid.UUID, in casting.UpdateActorInput) (*models.Actor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActorHandler handles actor-related HTTP requests
type ActorHandler struct {
	service ActorService
	logger  *zap.Logger
}

// NewActorHandler creates a new ActorHandler
func NewActorHandler(service ActorService, logger *zap.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /actors
func (h *ActorHandler) HandleList(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	actors, err := h.service.List(r.Context(), page)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, actorsToResponse(actors))
}

// HandleSearch handles POST /actors/search
func (h *ActorHandler) HandleSearch(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	var req SearchActorsRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	actors, err := h.service.Search(r.Context(), models.ActorFilter{
		NameContains: req.SearchName,
		Gender:       req.SearchGender,
		Age:          req.SearchAge,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, actorsToResponse(actors))
}

// HandleGet handles GET /actors/{id}
func (h *ActorHandler) HandleGet(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	actor, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, actorToResponse(actor))
}

// HandleListRoles handles GET /actors/{id}/roles
func (h *ActorHandler) HandleListRoles(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	roles, err := h.service.ListRoles(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, rolesToResponse(roles))
}

// HandleCreate handles POST /actors
func (h *ActorHandler) HandleCreate(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	var req CreateActorRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	actor, err := h.service.Create(r.Context(), casting.CreateActorInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Gender:   req.Gender,
		Age:      req.Age,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	if err := utils.WriteCreated(w, actorToResponse(actor)); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// HandleUpdate handles PATCH /actors/{id}
func (h *ActorHandler) HandleUpdate(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	var req UpdateActorRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	actor, err := h.service.Update(r.Context(), id, casting.UpdateActorInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Gender:   req.Gender,
		Age:      req.Age,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, actorToResponse(actor))
}

// HandleDelete handles DELETE /actors/{id}
func (h *ActorHandler) HandleDelete(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
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

func (h *ActorHandler) writeOK(w http.ResponseWriter, data interface{}) {
	if err := utils.WriteOK(w, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

func actorToResponse(a *models.Actor) ActorResponse {
	return ActorResponse{
		ID:        a.ID,
		Name:      a.Name,
		PhotoURL:  a.PhotoURL,
		Gender:    a.Gender,
		Age:       a.Age,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

func actorsToResponse(actors []*models.Actor) []ActorResponse {
	responses := make([]ActorResponse, len(actors))
	for i, a := range actors {
		responses[i] = actorToResponse(a)
	}
	return responses
}
