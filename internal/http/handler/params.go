package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseID 校验路径中的 id；格式非法时直接响应 400，不触达存储层
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePageLimit(c *gin.Context) (int, int) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		page = v
	}
	limit := 10
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 1 {
		limit = v
	}
	return page, limit
}
