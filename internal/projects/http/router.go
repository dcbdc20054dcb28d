package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.submit)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id/tasks/:task_id", h.setTaskStatus)
	rg.POST("/:id/tasks/:task_id/toggle", h.toggleTask)
}

// RegisterEvaluations attaches the evaluate-only endpoint.
func (h *Handler) RegisterEvaluations(rg *gin.RouterGroup) {
	rg.POST("", h.evaluate)
}
