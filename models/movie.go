package models

import (
	"time"

	"github.com/google/uuid"
)

// Movie represents a production the agency casts for
type Movie struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photoUrl" db:"photo_url"`
	Release   time.Time `json:"release" db:"release"`
	Genres    []string  `json:"genres" db:"genres"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Movie model
func (Movie) TableName() string {
	return "movies"
}

// NewMovie creates a new Movie instance
func NewMovie(name, photoURL string, release time.Time, genres []string) *Movie {
	now := time.Now().UTC()
	if genres == nil {
		genres = []string{}
	}
	return &Movie{
		ID:        uuid.New(),
		Name:      name,
		PhotoURL:  photoURL,
		Release:   release.UTC(),
		Genres:    genres,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MovieFilter narrows a movie search
type MovieFilter struct {
	NameContains string
}
