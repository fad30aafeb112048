package models

import (
	"time"

	"github.com/google/uuid"
)

// Actor represents a performer on the agency's books
type Actor struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photoUrl" db:"photo_url"`
	Gender    string    `json:"gender" db:"gender"`
	Age       int       `json:"age" db:"age"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Actor model
func (Actor) TableName() string {
	return "actors"
}

// NewActor creates a new Actor instance
func NewActor(name, photoURL, gender string, age int) *Actor {
	now := time.Now().UTC()
	return &Actor{
		ID:        uuid.New(),
		Name:      name,
		PhotoURL:  photoURL,
		Gender:    gender,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActorFilter narrows an actor search. Zero values are ignored.
type ActorFilter struct {
	NameContains string
	Gender       string
	Age          int
}

// IsEmpty reports whether no criterion is set
func (f ActorFilter) IsEmpty() bool {
	return f.NameContains == "" && f.Gender == "" && f.Age == 0
}
