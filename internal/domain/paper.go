package domain

import (
	"time"

	"github.com/google/uuid"
)

type Paper struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Abstract     string      `json:"abstract,omitempty"`
	DOI          string      `json:"doi,omitempty"`
	Slug         string      `json:"slug,omitempty"` // SEO 页面路径
	PDFURL       string      `json:"pdf_url,omitempty"`
	PublishedAt  *time.Time  `json:"published_at,omitempty"`
	JournalID    *uuid.UUID  `json:"journal_id,omitempty"`
	ConferenceID *uuid.UUID  `json:"conference_id,omitempty"`
	AuthorIDs    []uuid.UUID `json:"author_ids"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type PaperFilter struct {
	Query        string // title 模糊匹配
	JournalID    *uuid.UUID
	ConferenceID *uuid.UUID
}

type PaperPatch struct {
	Title        *string
	Abstract     *string
	DOI          *string
	Slug         *string
	PDFURL       *string
	PublishedAt  *time.Time
	JournalID    *uuid.UUID
	ConferenceID *uuid.UUID
	AuthorIDs    []uuid.UUID
}
