package handler

import (
	"net/http"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JournalHandler struct {
	repo *repo.JournalRepo
}

func NewJournalHandler(r *repo.JournalRepo) *JournalHandler {
	return &JournalHandler{repo: r}
}

// GET /api/v1/journals
func (h *JournalHandler) List(c *gin.Context) {
	page, limit := parsePageLimit(c)
	items, total, err := h.repo.List(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, newPagination(page, limit, total))
}

// GET /api/v1/journals/:id
func (h *JournalHandler) Get(c *gin.Context) {
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

type journalRequest struct {
	Name      *string `json:"name"`
	ISSN      *string `json:"issn"`
	Publisher *string `json:"publisher"`
	Website   *string `json:"website"`
}

// POST /api/v1/journals
func (h *JournalHandler) Create(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	v := &domain.Journal{ID: uuid.New(), Name: *req.Name}
	if req.ISSN != nil {
		v.ISSN = *req.ISSN
	}
	if req.Publisher != nil {
		v.Publisher = *req.Publisher
	}
	if req.Website != nil {
		v.Website = *req.Website
	}
	if err := h.repo.Insert(c.Request.Context(), v); err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, v)
}

// PUT /api/v1/journals/:id
func (h *JournalHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name must not be empty")
		return
	}
	v, err := h.repo.Update(c.Request.Context(), id, domain.JournalPatch{
		Name:      req.Name,
		ISSN:      req.ISSN,
		Publisher: req.Publisher,
		Website:   req.Website,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

// DELETE /api/v1/journals/:id
func (h *JournalHandler) Delete(c *gin.Context) {
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
	respondMessage(c, "journal deleted")
}
