package casting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/services"
	"go.uber.org/zap"
)

func newActorService() (*ActorService, *MockActorRepository, *MockRoleRepository) {
	actors := new(MockActorRepository)
	roles := new(MockRoleRepository)
	return NewActorService(actors, roles, zap.NewNop()), actors, roles
}

func TestActorService_Search(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  models.ActorFilter
		want    models.ActorFilter
		wantErr *services.DomainError
	}{
		{
			name:   "name only",
			filter: models.ActorFilter{NameContains: " ana "},
			want:   models.ActorFilter{NameContains: "ana"},
		},
		{
			name:   "all criteria",
			filter: models.ActorFilter{NameContains: "a", Gender: "female", Age: 30},
			want:   models.ActorFilter{NameContains: "a", Gender: "female", Age: 30},
		},
		{
			name:    "no criteria",
			filter:  models.ActorFilter{Gender: "  "},
			wantErr: services.ErrEmptySearch,
		},
		{
			name:    "negative age",
			filter:  models.ActorFilter{Age: -3},
			wantErr: services.ErrInvalidAge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, actors, _ := newActorService()
			if tt.wantErr == nil {
				actors.On("Search", ctx, tt.want).Return([]*models.Actor{}, nil)
			}

			_, err := svc.Search(ctx, tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				actors.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			actors.AssertExpectations(t)
		})
	}
}

func TestActorService_List(t *testing.T) {
	ctx := context.Background()
	svc, actors, _ := newActorService()
	actors.On("List", ctx, PageSize, 0).Return([]*models.Actor{}, nil)

	_, err := svc.List(ctx, 1)
	assert.ErrorIs(t, err, services.ErrPageNotFound)
}

func TestActorService_ListRoles(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("actor with no roles", func(t *testing.T) {
		svc, actors, roles := newActorService()
		actors.On("Exists", ctx, id).Return(true, nil)
		roles.On("ListByActor", ctx, id).Return([]*models.Role{}, nil)

		got, err := svc.ListRoles(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown actor", func(t *testing.T) {
		svc, actors, _ := newActorService()
		actors.On("Exists", ctx, id).Return(false, nil)

		_, err := svc.ListRoles(ctx, id)
		assert.ErrorIs(t, err, services.ErrActorNotFound)
	})
}

func TestActorService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		svc, actors, _ := newActorService()
		actors.On("Create", ctx, mock.AnythingOfType("*models.Actor")).Return(nil)

		actor, err := svc.Create(ctx, CreateActorInput{Name: "Ana", Gender: "female", Age: 30})
		require.NoError(t, err)
		assert.Equal(t, 30, actor.Age)
	})

	t.Run("zero age", func(t *testing.T) {
		svc, _, _ := newActorService()
		_, err := svc.Create(ctx, CreateActorInput{Name: "Ana", Gender: "female"})
		assert.ErrorIs(t, err, services.ErrInvalidAge)
	})
}

func TestActorService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("age must stay positive", func(t *testing.T) {
		svc, actors, _ := newActorService()
		existing := models.NewActor("Ana", "", "female", 30)
		actors.On("GetByID", ctx, id).Return(existing, nil)

		age := 0
		_, err := svc.Update(ctx, id, UpdateActorInput{Age: &age})
		assert.ErrorIs(t, err, services.ErrInvalidAge)
		actors.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("updates gender", func(t *testing.T) {
		svc, actors, _ := newActorService()
		existing := models.NewActor("Ana", "", "female", 30)
		actors.On("GetByID", ctx, id).Return(existing, nil)
		actors.On("Update", ctx, existing).Return(nil)

		gender := "non-binary"
		got, err := svc.Update(ctx, id, UpdateActorInput{Gender: &gender})
		require.NoError(t, err)
		assert.Equal(t, "non-binary", got.Gender)
		assert.Equal(t, 30, got.Age)
	})

	t.Run("empty update", func(t *testing.T) {
		svc, _, _ := newActorService()
		_, err := svc.Update(ctx, id, UpdateActorInput{})
		assert.ErrorIs(t, err, services.ErrNothingToUpdate)
	})
}

func TestActorService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, actors, _ := newActorService()
	id := uuid.New()
	actors.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.Delete(ctx, id))

	missing := uuid.New()
	actors.On("Delete", ctx, missing).Return(repositories.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, missing), services.ErrActorNotFound)
}
