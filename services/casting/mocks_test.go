package casting

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
)

// MockMovieRepository is a mock implementation of MovieRepository
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if movie := args.Get(0); movie != nil {
		return movie.(*models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) List(ctx context.Context, limit, offset int) ([]*models.Movie, error) {
	args := m.Called(ctx, limit, offset)
	if movies := args.Get(0); movies != nil {
		return movies.([]*models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) Search(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	args := m.Called(ctx, filter)
	if movies := args.Get(0); movies != nil {
		return movies.([]*models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMovieRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockActorRepository is a mock implementation of ActorRepository
type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) Create(ctx context.Context, actor *models.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockActorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Actor, error) {
	args := m.Called(ctx, id)
	if actor := args.Get(0); actor != nil {
		return actor.(*models.Actor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActorRepository) List(ctx context.Context, limit, offset int) ([]*models.Actor, error) {
	args := m.Called(ctx, limit, offset)
	if actors := args.Get(0); actors != nil {
		return actors.([]*models.Actor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActorRepository) Search(ctx context.Context, filter models.ActorFilter) ([]*models.Actor, error) {
	args := m.Called(ctx, filter)
	if actors := args.Get(0); actors != nil {
		return actors.([]*models.Actor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActorRepository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*models.Actor, error) {
	args := m.Called(ctx, movieID)
	if actors := args.Get(0); actors != nil {
		return actors.([]*models.Actor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActorRepository) Update(ctx context.Context, actor *models.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockActorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, role *models.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	args := m.Called(ctx, id)
	if role := args.Get(0); role != nil {
		return role.(*models.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context, limit, offset int) ([]*models.Role, error) {
	args := m.Called(ctx, limit, offset)
	if roles := args.Get(0); roles != nil {
		return roles.([]*models.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoleRepository) ListByActor(ctx context.Context, actorID uuid.UUID) ([]*models.Role, error) {
	args := m.Called(ctx, actorID)
	if roles := args.Get(0); roles != nil {
		return roles.([]*models.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoleRepository) Update(ctx context.Context, role *models.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRoleRepository) AddActor(ctx context.Context, roleID, actorID uuid.UUID) error {
	return m.Called(ctx, roleID, actorID).Error(0)
}

func (m *MockRoleRepository) RemoveActor(ctx context.Context, roleID, actorID uuid.UUID) error {
	return m.Called(ctx, roleID, actorID).Error(0)
}

// fakeTxManager runs transactional work on the caller's context and records the outcome
type fakeTxManager struct {
	committed  int
	rolledBack int
}

func (f *fakeTxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	return &fakeTx{ctx: ctx, mgr: f}, nil
}

func (f *fakeTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	tx, _ := f.Begin(ctx)
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type fakeTx struct {
	ctx context.Context
	mgr *fakeTxManager
}

func (t *fakeTx) Commit() error {
	t.mgr.committed++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.mgr.rolledBack++
	return nil
}

func (t *fakeTx) Context() context.Context {
	return t.ctx
}
