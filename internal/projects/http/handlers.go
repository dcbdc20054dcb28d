package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Submit(c.Request.Context(), req.ProjectIdea, req.SkillLevel)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, projectResp{OK: true, Project: p, Progress: domain.ProgressOf(p)})
}

func (h *Handler) evaluate(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, level, err := h.svc.Evaluate(c.Request.Context(), req.ProjectIdea, req.SkillLevel)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "skillLevel": level, "result": res})
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]domain.Summary, 0, len(projects))
	for i := range projects {
		items = append(items, domain.Summarize(&projects[i]))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items, "count": len(items)})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectResp{OK: true, Project: p, Progress: domain.ProgressOf(p)})
}

func (h *Handler) setTaskStatus(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req taskStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.SetTaskStatus(c.Request.Context(), c.Param("id"), taskID, *req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectResp{OK: true, Project: p, Progress: domain.ProgressOf(p)})
}

func (h *Handler) toggleTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	p, err := h.svc.ToggleTask(c.Request.Context(), c.Param("id"), taskID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectResp{OK: true, Project: p, Progress: domain.ProgressOf(p)})
}

func parseTaskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProject), errors.Is(err, domain.ErrInvalidSkillLevel):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrEvaluation):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "project evaluation failed, please try again", "retry": true})
	case errors.Is(err, domain.ErrStorageWrite):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save project"})
	case errors.Is(err, domain.ErrStorageRead):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "project storage unreadable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
