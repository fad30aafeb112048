package casting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/services"
	"go.uber.org/zap"
)

// CreateActorInput carries the fields of a new actor
type CreateActorInput struct {
	Name     string
	PhotoURL string
	Gender   string
	Age      int
}

// UpdateActorInput carries a partial actor update. Nil fields are left unchanged.
type UpdateActorInput struct {
	Name     *string
	PhotoURL *string
	Gender   *string
	Age      *int
}

// IsEmpty reports whether the update touches no field
func (in UpdateActorInput) IsEmpty() bool {
	return in.Name == nil && in.PhotoURL == nil && in.Gender == nil && in.Age == nil
}

// ActorService manages actors
type ActorService struct {
	actors repositories.ActorRepository
	roles  repositories.RoleRepository
	logger *zap.Logger
}

// NewActorService creates a new ActorService instance
func NewActorService(actors repositories.ActorRepository, roles repositories.RoleRepository, logger *zap.Logger) *ActorService {
	return &ActorService{
		actors: actors,
		roles:  roles,
		logger: logger,
	}
}

// List returns one page of actors. A page past the end is not found.
func (s *ActorService) List(ctx context.Context, page int) ([]*models.Actor, error) {
	limit, offset, err := pageBounds(page)
	if err != nil {
		return nil, err
	}

	actors, err := s.actors.List(ctx, limit, offset)
	if err != nil {
		return nil, services.WrapInternal("failed to list actors", err)
	}
	if len(actors) == 0 {
		return nil, services.ErrPageNotFound.WithDetail("page", page)
	}

	return actors, nil
}

// Search returns the actors matching every criterion set in filter
func (s *ActorService) Search(ctx context.Context, filter models.ActorFilter) ([]*models.Actor, error) {
	filter.NameContains = strings.TrimSpace(filter.NameContains)
	filter.Gender = strings.TrimSpace(filter.Gender)
	if filter.IsEmpty() {
		return nil, services.ErrEmptySearch
	}
	if filter.Age < 0 {
		return nil, services.ErrInvalidAge
	}

	actors, err := s.actors.Search(ctx, filter)
	if err != nil {
		return nil, services.WrapInternal("failed to search actors", err)
	}

	return actors, nil
}

// Get returns a single actor
func (s *ActorService) Get(ctx context.Context, id uuid.UUID) (*models.Actor, error) {
	actor, err := s.actors.GetByID(ctx, id)
	if err != nil {
		return nil, services.WrapRepository(err, services.ErrActorNotFound, "failed to get actor")
	}
	return actor, nil
}

// ListRoles returns the roles the actor has been cast for
func (s *ActorService) ListRoles(ctx context.Context, id uuid.UUID) ([]*models.Role, error) {
	found, err := s.actors.Exists(ctx, id)
	if err != nil {
		return nil, services.WrapInternal("failed to check actor", err)
	}
	if !found {
		return nil, services.ErrActorNotFound
	}

	roles, err := s.roles.ListByActor(ctx, id)
	if err != nil {
		return nil, services.WrapInternal("failed to list actor roles", err)
	}

	return roles, nil
}

// Create stores a new actor
func (s *ActorService) Create(ctx context.Context, in CreateActorInput) (*models.Actor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, services.ErrEmptyName
	}
	if in.Age <= 0 {
		return nil, services.ErrInvalidAge
	}

	actor := models.NewActor(name, in.PhotoURL, in.Gender, in.Age)
	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, services.WrapInternal("failed to create actor", err)
	}

	s.logger.Info("actor created",
		zap.String("actor_id", actor.ID.String()),
		zap.String("name", actor.Name))

	return actor, nil
}

// Update applies a partial update to an actor
func (s *ActorService) Update(ctx context.Context, id uuid.UUID, in UpdateActorInput) (*models.Actor, error) {
	if in.IsEmpty() {
		return nil, services.ErrNothingToUpdate
	}

	actor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, services.ErrEmptyName
		}
		actor.Name = name
	}
	if in.PhotoURL != nil {
		actor.PhotoURL = *in.PhotoURL
	}
	if in.Gender != nil {
		actor.Gender = *in.Gender
	}
	if in.Age != nil {
		if *in.Age <= 0 {
			return nil, services.ErrInvalidAge
		}
		actor.Age = *in.Age
	}
	actor.UpdatedAt = time.Now().UTC()

	if err := s.actors.Update(ctx, actor); err != nil {
		return nil, services.WrapRepository(err, services.ErrActorNotFound, "failed to update actor")
	}

	return actor, nil
}

// Delete removes an actor and their castings
func (s *ActorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.actors.Delete(ctx, id); err != nil {
		return services.WrapRepository(err, services.ErrActorNotFound, "failed to delete actor")
	}

	s.logger.Info("actor deleted", zap.String("actor_id", id.String()))
	return nil
}
