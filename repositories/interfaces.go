package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/casting-agency/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist
var ErrNotFound = errors.New("record not found")

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Repositories called with the ctx passed to fn run inside it.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	Context() context.Context
}

// MovieRepository handles movie data operations
type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Movie, error)

	// List returns movies ordered by creation time
	List(ctx context.Context, limit, offset int) ([]*models.Movie, error)

	// Search matches names case-insensitively by substring
	Search(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error)

	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ActorRepository handles actor data operations
type ActorRepository interface {
	Create(ctx context.Context, actor *models.Actor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Actor, error)
	List(ctx context.Context, limit, offset int) ([]*models.Actor, error)
	Search(ctx context.Context, filter models.ActorFilter) ([]*models.Actor, error)

	// ListByMovie returns the distinct actors cast in any role of the movie
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*models.Actor, error)

	Update(ctx context.Context, actor *models.Actor) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// RoleRepository handles role data operations and the role/actor casting link
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error

	// GetByID returns the role with ActorIDs populated
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)

	List(ctx context.Context, limit, offset int) ([]*models.Role, error)
	ListByActor(ctx context.Context, actorID uuid.UUID) ([]*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddActor casts an actor for a role. Casting twice is a no-op.
	AddActor(ctx context.Context, roleID, actorID uuid.UUID) error

	// RemoveActor uncasts an actor; ErrNotFound when the link does not exist
	RemoveActor(ctx context.Context, roleID, actorID uuid.UUID) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Movies MovieRepository
	Actors ActorRepository
	Roles  RoleRepository
}
