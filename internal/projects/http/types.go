package http

import (
	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
	"github.com/Busrapehlivan/project-advisor/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type submitReq struct {
	ProjectIdea string `json:"projectIdea"`
	SkillLevel  string `json:"skillLevel"`
}

type taskStatusReq struct {
	Completed *bool `json:"completed"`
}

type projectResp struct {
	OK       bool            `json:"ok"`
	Project  *domain.Project `json:"project"`
	Progress domain.Progress `json:"progress"`
}
