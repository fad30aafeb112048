package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a part in a movie that actors can be cast for
type Role struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Type      string      `json:"type" db:"type"`
	MovieID   uuid.UUID   `json:"movie" db:"movie_id"`
	ActorIDs  []uuid.UUID `json:"actors" db:"-"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new Role instance
func NewRole(name, roleType string, movieID uuid.UUID) *Role {
	now := time.Now().UTC()
	return &Role{
		ID:        uuid.New(),
		Name:      name,
		Type:      roleType,
		MovieID:   movieID,
		ActorIDs:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

