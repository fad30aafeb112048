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

// CreateRoleInput carries the fields of a new role
type CreateRoleInput struct {
	Name    string
	Type    string
	MovieID uuid.UUID
}

// UpdateRoleInput carries a partial role update. Nil fields are left unchanged.
type UpdateRoleInput struct {
	Name    *string
	Type    *string
	MovieID *uuid.UUID
}

// IsEmpty reports whether the update touches no field
func (in UpdateRoleInput) IsEmpty() bool {
	return in.Name == nil && in.Type == nil && in.MovieID == nil
}

// RoleService manages roles and who is cast for them
type RoleService struct {
	roles  repositories.RoleRepository
	movies repositories.MovieRepository
	actors repositories.ActorRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewRoleService creates a new RoleService instance
func NewRoleService(
	roles repositories.RoleRepository,
	movies repositories.MovieRepository,
	actors repositories.ActorRepository,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roles:  roles,
		movies: movies,
		actors: actors,
		txMgr:  txMgr,
		logger: logger,
	}
}

// List returns one page of roles. A page past the end is not found.
func (s *RoleService) List(ctx context.Context, page int) ([]*models.Role, error) {
	limit, offset, err := pageBounds(page)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.List(ctx, limit, offset)
	if err != nil {
		return nil, services.WrapInternal("failed to list roles", err)
	}
	if len(roles) == 0 {
		return nil, services.ErrPageNotFound.WithDetail("page", page)
	}

	return roles, nil
}

// Get returns a single role with its cast actor IDs
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, services.WrapRepository(err, services.ErrRoleNotFound, "failed to get role")
	}
	return role, nil
}

// Create stores a new role for an existing movie
func (s *RoleService) Create(ctx context.Context, in CreateRoleInput) (*models.Role, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, services.ErrEmptyName
	}

	return services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Role, error) {
		if err := s.requireMovie(ctx, in.MovieID); err != nil {
			return nil, err
		}

		role := models.NewRole(name, in.Type, in.MovieID)
		if err := s.roles.Create(ctx, role); err != nil {
			return nil, services.WrapInternal("failed to create role", err)
		}

		s.logger.Info("role created",
			zap.String("role_id", role.ID.String()),
			zap.String("movie_id", role.MovieID.String()))

		return role, nil
	})
}

// Update applies a partial update to a role. Moving a role requires the target movie to exist.
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, in UpdateRoleInput) (*models.Role, error) {
	if in.IsEmpty() {
		return nil, services.ErrNothingToUpdate
	}

	return services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Role, error) {
		role, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return nil, services.ErrEmptyName
			}
			role.Name = name
		}
		if in.Type != nil {
			role.Type = *in.Type
		}
		if in.MovieID != nil && *in.MovieID != role.MovieID {
			if err := s.requireMovie(ctx, *in.MovieID); err != nil {
				return nil, err
			}
			role.MovieID = *in.MovieID
		}
		role.UpdatedAt = time.Now().UTC()

		if err := s.roles.Update(ctx, role); err != nil {
			return nil, services.WrapRepository(err, services.ErrRoleNotFound, "failed to update role")
		}

		return role, nil
	})
}

// Delete removes a role and its castings
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		return services.WrapRepository(err, services.ErrRoleNotFound, "failed to delete role")
	}

	s.logger.Info("role deleted", zap.String("role_id", id.String()))
	return nil
}

// CastActor casts an actor for a role and returns the updated role.
// Casting an actor who already plays the role is a no-op.
func (s *RoleService) CastActor(ctx context.Context, roleID, actorID uuid.UUID) (*models.Role, error) {
	return services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Role, error) {
		if _, err := s.Get(ctx, roleID); err != nil {
			return nil, err
		}

		found, err := s.actors.Exists(ctx, actorID)
		if err != nil {
			return nil, services.WrapInternal("failed to check actor", err)
		}
		if !found {
			return nil, services.ErrActorNotFound
		}

		if err := s.roles.AddActor(ctx, roleID, actorID); err != nil {
			return nil, services.WrapInternal("failed to cast actor", err)
		}

		s.logger.Info("actor cast",
			zap.String("role_id", roleID.String()),
			zap.String("actor_id", actorID.String()))

		return s.Get(ctx, roleID)
	})
}

// UncastActor removes an actor from a role and returns the updated role
func (s *RoleService) UncastActor(ctx context.Context, roleID, actorID uuid.UUID) (*models.Role, error) {
	return services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Role, error) {
		if err := s.roles.RemoveActor(ctx, roleID, actorID); err != nil {
			return nil, services.WrapRepository(err, services.ErrCastingNotFound, "failed to uncast actor")
		}

		s.logger.Info("actor uncast",
			zap.String("role_id", roleID.String()),
			zap.String("actor_id", actorID.String()))

		return s.Get(ctx, roleID)
	})
}

func (s *RoleService) requireMovie(ctx context.Context, movieID uuid.UUID) error {
	found, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return services.WrapInternal("failed to check movie", err)
	}
	if !found {
		return services.ErrMovieNotFound
	}
	return nil
}
