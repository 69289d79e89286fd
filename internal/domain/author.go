package domain

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Homepage      string     `json:"homepage,omitempty"`
	InstitutionID *uuid.UUID `json:"institution_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AuthorPatch struct {
	Name          *string
	Email         *string
	Homepage      *string
	InstitutionID *uuid.UUID
}
