package handler

import (
	"net/http"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InstitutionHandler struct {
	repo *repo.InstitutionRepo
}

func NewInstitutionHandler(r *repo.InstitutionRepo) *InstitutionHandler {
	return &InstitutionHandler{repo: r}
}

// GET /api/v1/institutions
func (h *InstitutionHandler) List(c *gin.Context) {
	page, limit := parsePageLimit(c)
	items, total, err := h.repo.List(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, newPagination(page, limit, total))
}

// GET /api/v1/institutions/:id
func (h *InstitutionHandler) Get(c *gin.Context) {
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

type institutionRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Website *string `json:"website"`
}

// POST /api/v1/institutions
func (h *InstitutionHandler) Create(c *gin.Context) {
	var req institutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	v := &domain.Institution{ID: uuid.New(), Name: *req.Name}
	if req.Country != nil {
		v.Country = *req.Country
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

// PUT /api/v1/institutions/:id
func (h *InstitutionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req institutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name must not be empty")
		return
	}
	v, err := h.repo.Update(c.Request.Context(), id, domain.InstitutionPatch{
		Name:    req.Name,
		Country: req.Country,
		Website: req.Website,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

// DELETE /api/v1/institutions/:id
func (h *InstitutionHandler) Delete(c *gin.Context) {
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
	respondMessage(c, "institution deleted")
}
