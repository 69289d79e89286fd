package handler

import (
	"errors"
	"net/http"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// 所有接口统一返回 {success, data, message, error, pagination} 信封

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func newPagination(page, limit int, total int64) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondList(c *gin.Context, data any, pg *Pagination) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: pg})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Error: message})
}

// respondServiceError 按错误分类映射 HTTP 状态码：
// 校验错误 400，未找到 404，其余一律当作存储层错误 500 并透传原始消息
func respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		respondError(c, http.StatusNotFound, "record not found")
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
