package domain

import (
	"time"

	"github.com/google/uuid"
)

type Institution struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InstitutionPatch struct {
	Name    *string
	Country *string
	Website *string
}
