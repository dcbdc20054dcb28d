package domain

import "time"

// Project is one submitted idea together with the evaluation generated for it.
// The JSON shape is the persisted layout of the project collection.
type Project struct {
	ID          string            `json:"id" yaml:"id"`
	ProjectIdea string            `json:"projectIdea" yaml:"projectIdea"`
	SkillLevel  SkillLevel        `json:"skillLevel" yaml:"skillLevel"`
	CreatedAt   time.Time         `json:"createdAt" yaml:"createdAt"`
	Result      *EvaluationResult `json:"result" yaml:"result"`
}

// EvaluationResult is the structured payload returned by the evaluator.
type EvaluationResult struct {
	Evaluation      string `json:"evaluation" yaml:"evaluation"`
	Recommendations string `json:"recommendations" yaml:"recommendations"`
	FlowDiagram     string `json:"flowDiagram" yaml:"flowDiagram"`
	TaskList        []Task `json:"taskList" yaml:"taskList"`
}

// Task is a single step of a project's task list.
type Task struct {
	ID        int    `json:"id" yaml:"id"`
	Task      string `json:"task" yaml:"task"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Clone returns a deep copy so callers can mutate tasks without touching the original.
func (p Project) Clone() Project {
	out := p
	if p.Result != nil {
		r := *p.Result
		r.TaskList = append([]Task(nil), p.Result.TaskList...)
		out.Result = &r
	}
	return out
}

// Tasks returns the project's task list, or nil when no result is attached.
func (p *Project) Tasks() []Task {
	if p == nil || p.Result == nil {
		return nil
	}
	return p.Result.TaskList
}
