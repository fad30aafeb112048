package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

const movieColumns = `id, name, photo_url, release, genres, created_at, updated_at`

// MovieRepository implements the repositories.MovieRepository interface
type MovieRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *DB, logger *zap.Logger) repositories.MovieRepository {
	return &MovieRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(s rowScanner) (*models.Movie, error) {
	movie := &models.Movie{}
	err := s.Scan(
		&movie.ID,
		&movie.Name,
		&movie.PhotoURL,
		&movie.Release,
		pq.Array(&movie.Genres),
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	return movie, nil
}

// Create creates a new movie
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (id, name, photo_url, release, genres, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		movie.ID,
		movie.Name,
		movie.PhotoURL,
		movie.Release,
		pq.Array(movie.Genres),
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	r.logger.Debug("movie created", zap.String("id", movie.ID.String()))
	return nil
}

// GetByID retrieves a movie by ID
func (r *MovieRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// List retrieves movies with pagination
func (r *MovieRepository) List(ctx context.Context, limit, offset int) ([]*models.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	return r.query(ctx, query, limit, offset)
}

// Search retrieves movies whose name contains the filter term, ignoring case
func (r *MovieRepository) Search(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE name ILIKE $1
		ORDER BY name, id
	`

	return r.query(ctx, query, likePattern(filter.NameContains))
}

func (r *MovieRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Movie, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movie rows: %w", err)
	}

	return movies, nil
}

// Update updates a movie
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	query := `
		UPDATE movies
		SET name = $2,
		    photo_url = $3,
		    release = $4,
		    genres = $5,
		    updated_at = $6
		WHERE id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		movie.ID,
		movie.Name,
		movie.PhotoURL,
		movie.Release,
		pq.Array(movie.Genres),
		movie.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if err := expectAffected(result, "movie", movie.ID); err != nil {
		return err
	}

	r.logger.Debug("movie updated", zap.String("id", movie.ID.String()))
	return nil
}

// Delete deletes a movie and, through the foreign key, its roles
func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if err := expectAffected(result, "movie", id); err != nil {
		return err
	}

	r.logger.Debug("movie deleted", zap.String("id", id.String()))
	return nil
}

// Exists reports whether a movie with the given ID exists
func (r *MovieRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, GetExecutor(ctx, r.db), `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, id)
}
