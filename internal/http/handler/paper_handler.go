package handler

import (
	"net/http"
	"time"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaperHandler struct {
	repo *repo.PaperRepo
}

func NewPaperHandler(r *repo.PaperRepo) *PaperHandler {
	return &PaperHandler{repo: r}
}

// GET /api/v1/papers?q=&journal_id=&conference_id=
func (h *PaperHandler) List(c *gin.Context) {
	page, limit := parsePageLimit(c)

	f := domain.PaperFilter{Query: c.Query("q")}
	if v := c.Query("journal_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid journal_id: must be a UUID")
			return
		}
		f.JournalID = &id
	}
	if v := c.Query("conference_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid conference_id: must be a UUID")
			return
		}
		f.ConferenceID = &id
	}

	items, total, err := h.repo.List(c.Request.Context(), f, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, newPagination(page, limit, total))
}

// GET /api/v1/papers/:id
func (h *PaperHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

type paperRequest struct {
	Title        *string    `json:"title"`
	Abstract     *string    `json:"abstract"`
	DOI          *string    `json:"doi"`
	Slug         *string    `json:"slug"`
	PDFURL       *string    `json:"pdf_url"`
	PublishedAt  *time.Time `json:"published_at"`
	JournalID    *string    `json:"journal_id"`
	ConferenceID *string    `json:"conference_id"`
	AuthorIDs    []string   `json:"author_ids"`
}

func parseOptionalUUID(c *gin.Context, field string, v *string) (*uuid.UUID, bool) {
	if v == nil {
		return nil, true
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+field+": must be a UUID")
		return nil, false
	}
	return &id, true
}

func parseAuthorIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	if raw == nil {
		return nil, true
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid author_ids: every entry must be a UUID")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// POST /api/v1/papers
func (h *PaperHandler) Create(c *gin.Context) {
	var req paperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == nil || *req.Title == "" {
		respondError(c, http.StatusBadRequest, "title is required")
		return
	}
	journalID, ok := parseOptionalUUID(c, "journal_id", req.JournalID)
	if !ok {
		return
	}
	conferenceID, ok := parseOptionalUUID(c, "conference_id", req.ConferenceID)
	if !ok {
		return
	}
	authorIDs, ok := parseAuthorIDs(c, req.AuthorIDs)
	if !ok {
		return
	}

	v := &domain.Paper{
		ID:           uuid.New(),
		Title:        *req.Title,
		PublishedAt:  req.PublishedAt,
		JournalID:    journalID,
		ConferenceID: conferenceID,
		AuthorIDs:    authorIDs,
	}
	if req.Abstract != nil {
		v.Abstract = *req.Abstract
	}
	if req.DOI != nil {
		v.DOI = *req.DOI
	}
	if req.Slug != nil {
		v.Slug = *req.Slug
	}
	if req.PDFURL != nil {
		v.PDFURL = *req.PDFURL
	}
	if err := h.repo.Insert(c.Request.Context(), v); err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, v)
}

// PUT /api/v1/papers/:id
func (h *PaperHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req paperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title != nil && *req.Title == "" {
		respondError(c, http.StatusBadRequest, "title must not be empty")
		return
	}
	journalID, ok := parseOptionalUUID(c, "journal_id", req.JournalID)
	if !ok {
		return
	}
	conferenceID, ok := parseOptionalUUID(c, "conference_id", req.ConferenceID)
	if !ok {
		return
	}
	authorIDs, ok := parseAuthorIDs(c, req.AuthorIDs)
	if !ok {
		return
	}

	v, err := h.repo.Update(c.Request.Context(), id, domain.PaperPatch{
		Title:        req.Title,
		Abstract:     req.Abstract,
		DOI:          req.DOI,
		Slug:         req.Slug,
		PDFURL:       req.PDFURL,
		PublishedAt:  req.PublishedAt,
		JournalID:    journalID,
		ConferenceID: conferenceID,
		AuthorIDs:    authorIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

// DELETE /api/v1/papers/:id
func (h *PaperHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}
	respondMessage(c, "paper deleted")
}
