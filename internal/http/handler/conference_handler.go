package handler

import (
	"net/http"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConferenceHandler struct {
	repo *repo.ConferenceRepo
}

func NewConferenceHandler(r *repo.ConferenceRepo) *ConferenceHandler {
	return &ConferenceHandler{repo: r}
}

// GET /api/v1/conferences
func (h *ConferenceHandler) List(c *gin.Context) {
	page, limit := parsePageLimit(c)
	items, total, err := h.repo.List(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, newPagination(page, limit, total))
}

// GET /api/v1/conferences/:id
func (h *ConferenceHandler) Get(c *gin.Context) {
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

type conferenceRequest struct {
	Name     *string `json:"name"`
	Acronym  *string `json:"acronym"`
	Year     *int    `json:"year"`
	Location *string `json:"location"`
	Website  *string `json:"website"`
}

// POST /api/v1/conferences
func (h *ConferenceHandler) Create(c *gin.Context) {
	var req conferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	v := &domain.Conference{ID: uuid.New(), Name: *req.Name}
	if req.Acronym != nil {
		v.Acronym = *req.Acronym
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.Location != nil {
		v.Location = *req.Location
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

// PUT /api/v1/conferences/:id
func (h *ConferenceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req conferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name must not be empty")
		return
	}
	v, err := h.repo.Update(c.Request.Context(), id, domain.ConferencePatch{
		Name:     req.Name,
		Acronym:  req.Acronym,
		Year:     req.Year,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

// DELETE /api/v1/conferences/:id
func (h *ConferenceHandler) Delete(c *gin.Context) {
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
	respondMessage(c, "conference deleted")
}
