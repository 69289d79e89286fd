package handler

import (
	"net/http"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthorHandler struct {
	repo *repo.AuthorRepo
}

func NewAuthorHandler(r *repo.AuthorRepo) *AuthorHandler {
	return &AuthorHandler{repo: r}
}

// GET /api/v1/authors
func (h *AuthorHandler) List(c *gin.Context) {
	page, limit := parsePageLimit(c)
	items, total, err := h.repo.List(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, newPagination(page, limit, total))
}

// GET /api/v1/authors/:id
func (h *AuthorHandler) Get(c *gin.Context) {
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

type authorRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Homepage      *string `json:"homepage"`
	InstitutionID *string `json:"institution_id"`
}

func (req *authorRequest) institutionID(c *gin.Context) (*uuid.UUID, bool) {
	if req.InstitutionID == nil {
		return nil, true
	}
	id, err := uuid.Parse(*req.InstitutionID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid institution_id: must be a UUID")
		return nil, false
	}
	return &id, true
}

// POST /api/v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	instID, ok := req.institutionID(c)
	if !ok {
		return
	}
	v := &domain.Author{ID: uuid.New(), Name: *req.Name, InstitutionID: instID}
	if req.Email != nil {
		v.Email = *req.Email
	}
	if req.Homepage != nil {
		v.Homepage = *req.Homepage
	}
	if err := h.repo.Insert(c.Request.Context(), v); err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, v)
}

// PUT /api/v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name != nil && *req.Name == "" {
		respondError(c, http.StatusBadRequest, "name must not be empty")
		return
	}
	instID, ok := req.institutionID(c)
	if !ok {
		return
	}
	v, err := h.repo.Update(c.Request.Context(), id, domain.AuthorPatch{
		Name:          req.Name,
		Email:         req.Email,
		Homepage:      req.Homepage,
		InstitutionID: instID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

// DELETE /api/v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
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
	respondMessage(c, "author deleted")
}
