package domain

import (
	"time"

	"github.com/google/uuid"
)

type Journal struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ISSN      string    `json:"issn,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JournalPatch struct {
	Name      *string
	ISSN      *string
	Publisher *string
	Website   *string
}
