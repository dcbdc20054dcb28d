// Package audit periodically re-reads the project collection strictly, so that
// corruption hidden by the lenient read policy still shows up in the logs.
package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

// Loader reads the collection and reports decode failures.
type Loader interface {
	Load(ctx context.Context) ([]domain.Project, error)
}

type Report struct {
	Projects          int
	Tasks             int
	DuplicateProjects []string
	DuplicateTasks    []string // "projectID/taskID"
	MissingResult     []string
	Err               error
}

func (r Report) OK() bool {
	return r.Err == nil && len(r.DuplicateProjects) == 0 && len(r.DuplicateTasks) == 0 && len(r.MissingResult) == 0
}

// Check loads the collection and verifies the store invariants.
func Check(ctx context.Context, loader Loader) Report {
	projects, err := loader.Load(ctx)
	if err != nil {
		return Report{Err: err}
	}

	var rep Report
	rep.Projects = len(projects)
	seen := make(map[string]bool, len(projects))
	for _, p := range projects {
		if seen[p.ID] {
			rep.DuplicateProjects = append(rep.DuplicateProjects, p.ID)
		}
		seen[p.ID] = true

		if p.Result == nil {
			rep.MissingResult = append(rep.MissingResult, p.ID)
			continue
		}
		taskSeen := make(map[int]bool, len(p.Result.TaskList))
		for _, t := range p.Result.TaskList {
			rep.Tasks++
			if taskSeen[t.ID] {
				rep.DuplicateTasks = append(rep.DuplicateTasks, fmt.Sprintf("%s/%d", p.ID, t.ID))
			}
			taskSeen[t.ID] = true
		}
	}
	return rep
}

type Scheduler struct {
	cron   *cron.Cron
	loader Loader
}

func NewScheduler(loader Loader) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		loader: loader,
	}
}

// Start registers the audit under spec (six fields, with seconds) and starts
// the cron runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("schedule audit %q: %w", spec, err)
	}
	s.cron.Start()
	log.Printf("Store audit scheduled (%s)", spec)
	return nil
}

// Stop halts scheduling and waits for a running audit to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rep := Check(ctx, s.loader)
	switch {
	case rep.Err != nil:
		log.Printf("[error] operation=store_audit error=%v", rep.Err)
	case !rep.OK():
		log.Printf("[warn] operation=store_audit projects=%d duplicate_projects=%v duplicate_tasks=%v missing_result=%v",
			rep.Projects, rep.DuplicateProjects, rep.DuplicateTasks, rep.MissingResult)
	default:
		log.Printf("[info] operation=store_audit projects=%d tasks=%d ok", rep.Projects, rep.Tasks)
	}
}
