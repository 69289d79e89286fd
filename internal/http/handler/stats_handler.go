package handler

import (
	"github.com/yuezh000/WisPaper-SEO-sub001/internal/repo"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	tasks *repo.TaskRepo
}

func NewStatsHandler(tasks *repo.TaskRepo) *StatsHandler {
	return &StatsHandler{tasks: tasks}
}

// GET /api/v1/stats/tasks
// 仪表盘首屏数字：任务按状态、按类型的计数
func (h *StatsHandler) TaskStats(c *gin.Context) {
	byStatus, byType, err := h.tasks.CountGrouped(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	respondOK(c, gin.H{"total": total, "by_status": byStatus, "by_type": byType})
}
