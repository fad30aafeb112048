package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

const actorColumns = `a.id, a.name, a.photo_url, a.gender, a.age, a.created_at, a.updated_at`

// ActorRepository implements the repositories.ActorRepository interface
type ActorRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *DB, logger *zap.Logger) repositories.ActorRepository {
	return &ActorRepository{
		db:     db,
		logger: logger,
	}
}

func scanActor(s rowScanner) (*models.Actor, error) {
	actor := &models.Actor{}
	err := s.Scan(
		&actor.ID,
		&actor.Name,
		&actor.PhotoURL,
		&actor.Gender,
		&actor.Age,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return actor, nil
}

// Create creates a new actor
func (r *ActorRepository) Create(ctx context.Context, actor *models.Actor) error {
	query := `
		INSERT INTO actors (id, name, photo_url, gender, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		actor.ID,
		actor.Name,
		actor.PhotoURL,
		actor.Gender,
		actor.Age,
		actor.CreatedAt,
		actor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}

	r.logger.Debug("actor created", zap.String("id", actor.ID.String()))
	return nil
}

// GetByID retrieves an actor by ID
func (r *ActorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors a WHERE a.id = $1`

	actor, err := scanActor(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("actor %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	return actor, nil
}

// List retrieves actors with pagination
func (r *ActorRepository) List(ctx context.Context, limit, offset int) ([]*models.Actor, error) {
	query := `
		SELECT ` + actorColumns + `
		FROM actors a
		ORDER BY a.created_at, a.id
		LIMIT $1 OFFSET $2
	`

	return r.query(ctx, query, limit, offset)
}

// Search retrieves actors matching every criterion set in the filter.
// Name matches by case-insensitive substring, gender case-insensitively, age exactly.
func (r *ActorRepository) Search(ctx context.Context, filter models.ActorFilter) ([]*models.Actor, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.NameContains != "" {
		args = append(args, likePattern(filter.NameContains))
		conditions = append(conditions, fmt.Sprintf("a.name ILIKE $%d", len(args)))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		conditions = append(conditions, fmt.Sprintf("LOWER(a.gender) = LOWER($%d)", len(args)))
	}
	if filter.Age != 0 {
		args = append(args, filter.Age)
		conditions = append(conditions, fmt.Sprintf("a.age = $%d", len(args)))
	}

	query := `SELECT ` + actorColumns + ` FROM actors a`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY a.name, a.id`

	return r.query(ctx, query, args...)
}

// ListByMovie retrieves the distinct actors cast in any role of a movie
func (r *ActorRepository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*models.Actor, error) {
	query := `
		SELECT DISTINCT ` + actorColumns + `
		FROM actors a
		JOIN role_actors ra ON ra.actor_id = a.id
		JOIN roles r ON r.id = ra.role_id
		WHERE r.movie_id = $1
		ORDER BY a.name, a.id
	`

	return r.query(ctx, query, movieID)
}

func (r *ActorRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Actor, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query actors: %w", err)
	}
	defer rows.Close()

	actors := []*models.Actor{}
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan actor: %w", err)
		}
		actors = append(actors, actor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating actor rows: %w", err)
	}

	return actors, nil
}

// Update updates an actor
func (r *ActorRepository) Update(ctx context.Context, actor *models.Actor) error {
	query := `
		UPDATE actors
		SET name = $2,
		    photo_url = $3,
		    gender = $4,
		    age = $5,
		    updated_at = $6
		WHERE id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		actor.ID,
		actor.Name,
		actor.PhotoURL,
		actor.Gender,
		actor.Age,
		actor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update actor: %w", err)
	}

	if err := expectAffected(result, "actor", actor.ID); err != nil {
		return err
	}

	r.logger.Debug("actor updated", zap.String("id", actor.ID.String()))
	return nil
}

// Delete deletes an actor and their castings
func (r *ActorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete actor: %w", err)
	}

	if err := expectAffected(result, "actor", id); err != nil {
		return err
	}

	r.logger.Debug("actor deleted", zap.String("id", id.String()))
	return nil
}

// Exists reports whether an actor with the given ID exists
func (r *ActorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, GetExecutor(ctx, r.db), `SELECT EXISTS(SELECT 1 FROM actors WHERE id = $1)`, id)
}
