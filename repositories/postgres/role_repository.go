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

// roleSelect aggregates the cast actors of each role into an array column
const roleSelect = `
	SELECT r.id, r.name, r.type, r.movie_id, r.created_at, r.updated_at,
	       COALESCE(array_agg(ra.actor_id::text ORDER BY ra.cast_at, ra.actor_id)
	                FILTER (WHERE ra.actor_id IS NOT NULL), '{}') AS actor_ids
	FROM roles r
	LEFT JOIN role_actors ra ON ra.role_id = r.id
`

const roleGroupBy = ` GROUP BY r.id, r.name, r.type, r.movie_id, r.created_at, r.updated_at`

// RoleRepository implements the repositories.RoleRepository interface
type RoleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *DB, logger *zap.Logger) repositories.RoleRepository {
	return &RoleRepository{
		db:     db,
		logger: logger,
	}
}

func scanRole(s rowScanner) (*models.Role, error) {
	role := &models.Role{}
	var actorIDs pq.StringArray
	err := s.Scan(
		&role.ID,
		&role.Name,
		&role.Type,
		&role.MovieID,
		&role.CreatedAt,
		&role.UpdatedAt,
		&actorIDs,
	)
	if err != nil {
		return nil, err
	}

	role.ActorIDs = make([]uuid.UUID, 0, len(actorIDs))
	for _, raw := range actorIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid actor id %q: %w", raw, err)
		}
		role.ActorIDs = append(role.ActorIDs, id)
	}
	return role, nil
}

// Create creates a new role
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (id, name, type, movie_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		role.ID,
		role.Name,
		role.Type,
		role.MovieID,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	r.logger.Debug("role created",
		zap.String("id", role.ID.String()),
		zap.String("movie_id", role.MovieID.String()))
	return nil
}

// GetByID retrieves a role with its cast actor IDs
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	query := roleSelect + ` WHERE r.id = $1` + roleGroupBy

	role, err := scanRole(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("role %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return role, nil
}

// List retrieves roles with pagination
func (r *RoleRepository) List(ctx context.Context, limit, offset int) ([]*models.Role, error) {
	query := roleSelect + roleGroupBy + `
		ORDER BY r.created_at, r.id
		LIMIT $1 OFFSET $2
	`

	return r.query(ctx, query, limit, offset)
}

// ListByActor retrieves the roles an actor has been cast for
func (r *RoleRepository) ListByActor(ctx context.Context, actorID uuid.UUID) ([]*models.Role, error) {
	query := roleSelect + `
		WHERE r.id IN (SELECT role_id FROM role_actors WHERE actor_id = $1)
	` + roleGroupBy + `
		ORDER BY r.created_at, r.id
	`

	return r.query(ctx, query, actorID)
}

func (r *RoleRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Role, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []*models.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}

	return roles, nil
}

// Update updates a role's own columns. Castings are managed through AddActor/RemoveActor.
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	query := `
		UPDATE roles
		SET name = $2,
		    type = $3,
		    movie_id = $4,
		    updated_at = $5
		WHERE id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		role.ID,
		role.Name,
		role.Type,
		role.MovieID,
		role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	if err := expectAffected(result, "role", role.ID); err != nil {
		return err
	}

	r.logger.Debug("role updated", zap.String("id", role.ID.String()))
	return nil
}

// Delete deletes a role and its castings
func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if err := expectAffected(result, "role", id); err != nil {
		return err
	}

	r.logger.Debug("role deleted", zap.String("id", id.String()))
	return nil
}

// AddActor casts an actor for a role
func (r *RoleRepository) AddActor(ctx context.Context, roleID, actorID uuid.UUID) error {
	query := `
		INSERT INTO role_actors (role_id, actor_id)
		VALUES ($1, $2)
		ON CONFLICT (role_id, actor_id) DO NOTHING
	`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, roleID, actorID); err != nil {
		return fmt.Errorf("failed to cast actor: %w", err)
	}

	r.logger.Debug("actor cast",
		zap.String("role_id", roleID.String()),
		zap.String("actor_id", actorID.String()))
	return nil
}

// RemoveActor uncasts an actor from a role
func (r *RoleRepository) RemoveActor(ctx context.Context, roleID, actorID uuid.UUID) error {
	query := `DELETE FROM role_actors WHERE role_id = $1 AND actor_id = $2`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, roleID, actorID)
	if err != nil {
		return fmt.Errorf("failed to uncast actor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("casting %s/%s: %w", roleID, actorID, repositories.ErrNotFound)
	}

	r.logger.Debug("actor uncast",
		zap.String("role_id", roleID.String()),
		zap.String("actor_id", actorID.String()))
	return nil
}
