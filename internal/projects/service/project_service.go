package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Busrapehlivan/project-advisor/internal/logging"
	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
	"github.com/Busrapehlivan/project-advisor/internal/projects/repository"
)

// Evaluator turns an idea and skill level into an evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, idea string, level domain.SkillLevel) (*domain.EvaluationResult, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store     *repository.ProjectStore
	evaluator Evaluator
}

// NewProjectService creates a new project service
func NewProjectService(store *repository.ProjectStore, evaluator Evaluator) *ProjectService {
	return &ProjectService{
		store:     store,
		evaluator: evaluator,
	}
}

// Evaluate validates the input and runs the evaluator without persisting anything.
func (s *ProjectService) Evaluate(ctx context.Context, idea, skillLevel string) (*domain.EvaluationResult, domain.SkillLevel, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, "", fmt.Errorf("%w: projectIdea required", domain.ErrInvalidProject)
	}
	level, err := domain.ParseSkillLevel(skillLevel)
	if err != nil {
		return nil, "", err
	}

	res, err := s.evaluator.Evaluate(ctx, idea, level)
	if err != nil {
		if !errors.Is(err, domain.ErrEvaluation) {
			err = fmt.Errorf("%w: %w", domain.ErrEvaluation, err)
		}
		return nil, level, err
	}
	if res == nil {
		return nil, level, fmt.Errorf("%w: empty result", domain.ErrEvaluation)
	}
	return res, level, nil
}

// Submit evaluates the idea and persists the new project. Nothing is written
// when the evaluation fails.
func (s *ProjectService) Submit(ctx context.Context, idea, skillLevel string) (*domain.Project, error) {
	logger := logging.New(ctx)

	res, level, err := s.Evaluate(ctx, idea, skillLevel)
	if err != nil {
		logger.LogWarnf("submit_project", "evaluation rejected: %v", err)
		return nil, err
	}

	p, err := s.store.Create(ctx, domain.Project{
		ProjectIdea: strings.TrimSpace(idea),
		SkillLevel:  level,
		Result:      res,
	})
	if err != nil {
		logger.LogError("submit_project", err)
		return nil, err
	}

	logger.LogInfof("submit_project", "project_id=%s skill_level=%s tasks=%d", p.ID, p.SkillLevel, len(res.TaskList))
	return p, nil
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ProjectService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// SetTaskStatus sets a task's completed flag.
func (s *ProjectService) SetTaskStatus(ctx context.Context, projectID string, taskID int, completed bool) (*domain.Project, error) {
	p, err := s.store.UpdateTaskStatus(ctx, projectID, taskID, completed)
	if err != nil {
		logging.New(ctx).LogError("set_task_status", err)
		return nil, err
	}
	return p, nil
}

// ToggleTask flips a task's completed flag. An unknown task id leaves the
// project unchanged.
func (s *ProjectService) ToggleTask(ctx context.Context, projectID string, taskID int) (*domain.Project, error) {
	p, err := s.store.ToggleTaskStatus(ctx, projectID, taskID)
	if err != nil {
		logging.New(ctx).LogError("toggle_task", err)
		return nil, err
	}
	logging.New(ctx).LogDebugf("toggle_task", "project_id=%s task_id=%d", projectID, taskID)
	return p, nil
}
