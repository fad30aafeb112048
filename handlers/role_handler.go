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

// CreateRoleRequest represents a request to create a role
type CreateRoleRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	Type    string `json:"type" validate:"required,max=100"`
	MovieID string `json:"movie" validate:"required,uuid"`
}

// UpdateRoleRequest represents a partial role update
type UpdateRoleRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=150"`
	Type    *string `json:"type,omitempty" validate:"omitempty,max=100"`
	MovieID *string `json:"movie,omitempty" validate:"omitempty,uuid"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	MovieID   uuid.UUID   `json:"movie"`
	ActorIDs  []uuid.UUID `json:"actors"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// RoleService defines the role operations the handler needs
type RoleService interface {
	List(ctx context.Context, page int) ([]*models.Role, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Role, error)
	Create(ctx context.Context, in casting.CreateRoleInput) (*models.Role, error)
	Update(ctx context.Context, id uuid.UUID, in casting.UpdateRoleInput) (*models.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CastActor(ctx context.Context, roleID, actorID uuid.UUID) (*models.Role, error)
	UncastActor(ctx context.Context, roleID, actorID uuid.UUID) (*models.Role, error)
}

// RoleHandler handles role and casting HTTP requests
type RoleHandler struct {
	service RoleService
	logger  *zap.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(service RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /roles
func (h *RoleHandler) HandleList(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	roles, err := h.service.List(r.Context(), page)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, rolesToResponse(roles))
}

// HandleGet handles GET /roles/{id}
func (h *RoleHandler) HandleGet(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	role, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, roleToResponse(role))
}

// HandleCreate handles POST /roles
func (h *RoleHandler) HandleCreate(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	movieID, err := utils.ParseUUID(req.MovieID)
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	role, err := h.service.Create(r.Context(), casting.CreateRoleInput{
		Name:    req.Name,
		Type:    req.Type,
		MovieID: movieID,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	if err := utils.WriteCreated(w, roleToResponse(role)); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// HandleUpdate handles PATCH /roles/{id}
func (h *RoleHandler) HandleUpdate(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	var req UpdateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, r, err, h.logger)
		return
	}

	in := casting.UpdateRoleInput{Name: req.Name, Type: req.Type}
	if req.MovieID != nil {
		movieID, err := utils.ParseUUID(*req.MovieID)
		if err != nil {
			HandleValidationError(w, r, err, h.logger)
			return
		}
		in.MovieID = &movieID
	}

	role, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, roleToResponse(role))
}

// HandleDelete handles DELETE /roles/{id}
func (h *RoleHandler) HandleDelete(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
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

// HandleCastActor handles PUT /roles/{id}/actors/{actorID}
func (h *RoleHandler) HandleCastActor(claims *auth.Claims, w http.ResponseWriter, r *http.Request) {
	roleID, actorID, ok := h.castingIDs(w, r)
	if !ok {
		return
	}

	role, err := h.service.CastActor(r.Context(), roleID, actorID)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info("actor cast via API",
		zap.String("request_id", requestID(r)),
		zap.String("role_id", roleID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("subject", claims.Subject))

	h.writeOK(w, roleToResponse(role))
}

// HandleUncastActor handles DELETE /roles/{id}/actors/{actorID}
func (h *RoleHandler) HandleUncastActor(_ *auth.Claims, w http.ResponseWriter, r *http.Request) {
	roleID, actorID, ok := h.castingIDs(w, r)
	if !ok {
		return
	}

	role, err := h.service.UncastActor(r.Context(), roleID, actorID)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	h.writeOK(w, roleToResponse(role))
}

func (h *RoleHandler) castingIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	roleID, err := pathID(r, "id")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	actorID, err := pathID(r, "actorID")
	if err != nil {
		HandleValidationError(w, r, err, h.logger)
		return uuid.Nil, uuid.Nil, false
	}
	return roleID, actorID, true
}

func (h *RoleHandler) writeOK(w http.ResponseWriter, data interface{}) {
	if err := utils.WriteOK(w, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

func roleToResponse(role *models.Role) RoleResponse {
	actorIDs := role.ActorIDs
	if actorIDs == nil {
		actorIDs = []uuid.UUID{}
	}
	return RoleResponse{
		ID:        role.ID,
		Name:      role.Name,
		Type:      role.Type,
		MovieID:   role.MovieID,
		ActorIDs:  actorIDs,
		CreatedAt: role.CreatedAt.Format(time.RFC3339),
		UpdatedAt: role.UpdatedAt.Format(time.RFC3339),
	}
}

func rolesToResponse(roles []*models.Role) []RoleResponse {
	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = roleToResponse(role)
	}
	return responses
}
