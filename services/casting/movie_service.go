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

// CreateMovieInput carries the fields of a new movie
type CreateMovieInput struct {
	Name     string
	PhotoURL string
	Release  time.Time
	Genres   []string
}

// UpdateMovieInput carries a partial movie update. Nil fields are left unchanged.
type UpdateMovieInput struct {
	Name     *string
	PhotoURL *string
	Release  *time.Time
	Genres   *[]string
}

// IsEmpty reports whether the update touches no field
func (in UpdateMovieInput) IsEmpty() bool {
	return in.Name == nil && in.PhotoURL == nil && in.Release == nil && in.Genres == nil
}

// MovieService manages movies and answers questions about their cast
type MovieService struct {
	movies repositories.MovieRepository
	actors repositories.ActorRepository
	logger *zap.Logger
}

// NewMovieService creates a new MovieService instance
func NewMovieService(movies repositories.MovieRepository, actors repositories.ActorRepository, logger *zap.Logger) *MovieService {
	return &MovieService{
		movies: movies,
		actors: actors,
		logger: logger,
	}
}

// List returns one page of movies. A page past the end is not found.
func (s *MovieService) List(ctx context.Context, page int) ([]*models.Movie, error) {
	limit, offset, err := pageBounds(page)
	if err != nil {
		return nil, err
	}

	movies, err := s.movies.List(ctx, limit, offset)
	if err != nil {
		return nil, services.WrapInternal("failed to list movies", err)
	}
	if len(movies) == 0 {
		return nil, services.ErrPageNotFound.WithDetail("page", page)
	}

	return movies, nil
}

// Search returns the movies whose name contains term, ignoring case
func (s *MovieService) Search(ctx context.Context, term string) ([]*models.Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, services.ErrEmptySearch
	}

	movies, err := s.movies.Search(ctx, models.MovieFilter{NameContains: term})
	if err != nil {
		return nil, services.WrapInternal("failed to search movies", err)
	}

	return movies, nil
}

// Get returns a single movie
func (s *MovieService) Get(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, services.WrapRepository(err, services.ErrMovieNotFound, "failed to get movie")
	}
	return movie, nil
}

// ListActors returns the distinct actors cast in any role of the movie
func (s *MovieService) ListActors(ctx context.Context, id uuid.UUID) ([]*models.Actor, error) {
	found, err := s.movies.Exists(ctx, id)
	if err != nil {
		return nil, services.WrapInternal("failed to check movie", err)
	}
	if !found {
		return nil, services.ErrMovieNotFound
	}

	actors, err := s.actors.ListByMovie(ctx, id)
	if err != nil {
		return nil, services.WrapInternal("failed to list movie actors", err)
	}
	if len(actors) == 0 {
		return nil, services.ErrNoActorsCast
	}

	return actors, nil
}

// Create stores a new movie
func (s *MovieService) Create(ctx context.Context, in CreateMovieInput) (*models.Movie, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, services.ErrEmptyName
	}

	movie := models.NewMovie(name, in.PhotoURL, in.Release, in.Genres)
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, services.WrapInternal("failed to create movie", err)
	}

	s.logger.Info("movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("name", movie.Name))

	return movie, nil
}

// Update applies a partial update to a movie
func (s *MovieService) Update(ctx context.Context, id uuid.UUID, in UpdateMovieInput) (*models.Movie, error) {
	if in.IsEmpty() {
		return nil, services.ErrNothingToUpdate
	}

	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, services.ErrEmptyName
		}
		movie.Name = name
	}
	if in.PhotoURL != nil {
		movie.PhotoURL = *in.PhotoURL
	}
	if in.Release != nil {
		movie.Release = in.Release.UTC()
	}
	if in.Genres != nil {
		movie.Genres = *in.Genres
		if movie.Genres == nil {
			movie.Genres = []string{}
		}
	}
	movie.UpdatedAt = time.Now().UTC()

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, services.WrapRepository(err, services.ErrMovieNotFound, "failed to update movie")
	}

	return movie, nil
}

// Delete removes a movie together with its roles
func (s *MovieService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return services.WrapRepository(err, services.ErrMovieNotFound, "failed to delete movie")
	}

	s.logger.Info("movie deleted", zap.String("movie_id", id.String()))
	return nil
}
