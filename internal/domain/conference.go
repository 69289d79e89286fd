package domain

import (
	"time"

	"github.com/google/uuid"
)

type Conference struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Acronym   string    `json:"acronym,omitempty"`
	Year      int       `json:"year,omitempty"`
	Location  string    `json:"location,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConferencePatch struct {
	Name     *string
	Acronym  *string
	Year     *int
	Location *string
	Website  *string
}
