package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Busrapehlivan/project-advisor/internal/projects/audit"
	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

func (a *app) runList(ctx context.Context) error {
	projects, err := a.svc.List(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects yet.")
		return nil
	}

	for i := range projects {
		s := domain.Summarize(&projects[i])
		fmt.Fprintf(a.out, "%-15s  %-12s  %s  %3d%% (%d/%d)  %s\n",
			s.ID, s.SkillLevel, s.CreatedAt.Format("2006-01-02"),
			s.Progress.Percent, s.Progress.Completed, s.Progress.Total, s.Idea)
	}
	return nil
}

func (a *app) runShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: advisor show <id>")
	}
	p, err := a.svc.Get(ctx, args[0])
	if err != nil {
		return err
	}
	a.printProject(p)
	return nil
}

func (a *app) runSet(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: advisor set <id> <task-id> <true|false>")
	}
	taskID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[1])
	}
	completed, err := strconv.ParseBool(args[2])
	if err != nil {
		return fmt.Errorf("invalid completed flag %q", args[2])
	}

	p, err := a.svc.SetTaskStatus(ctx, args[0], taskID, completed)
	if err != nil {
		return err
	}
	a.printProject(p)
	return nil
}

func (a *app) runToggle(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: advisor toggle <id> <task-id>")
	}
	taskID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[1])
	}

	p, err := a.svc.ToggleTask(ctx, args[0], taskID)
	if err != nil {
		return err
	}
	a.printProject(p)
	return nil
}

func (a *app) runEvaluate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: advisor evaluate <level> <idea...>")
	}
	p, err := a.svc.Submit(ctx, strings.Join(args[1:], " "), args[0])
	if err != nil {
		return err
	}
	a.printProject(p)
	return nil
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	format := fs.String("format", "json", "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	projects, err := a.store.Load(ctx)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(projects); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func (a *app) runAudit(ctx context.Context) error {
	rep := audit.Check(ctx, a.store)
	if rep.Err != nil {
		return rep.Err
	}
	fmt.Fprintf(a.out, "Projects:           %d\n", rep.Projects)
	fmt.Fprintf(a.out, "Tasks:              %d\n", rep.Tasks)
	fmt.Fprintf(a.out, "Duplicate projects: %v\n", rep.DuplicateProjects)
	fmt.Fprintf(a.out, "Duplicate tasks:    %v\n", rep.DuplicateTasks)
	fmt.Fprintf(a.out, "Missing result:     %v\n", rep.MissingResult)
	if !rep.OK() {
		return fmt.Errorf("audit found problems")
	}
	return nil
}

func (a *app) printProject(p *domain.Project) {
	prog := domain.ProgressOf(p)
	fmt.Fprintf(a.out, "%s  [%s]  %s\n", p.ID, p.SkillLevel, p.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Idea: %s\n", p.ProjectIdea)
	if p.Result != nil {
		fmt.Fprintf(a.out, "\nEvaluation:\n%s\n", p.Result.Evaluation)
		fmt.Fprintf(a.out, "\nRecommendations:\n%s\n", p.Result.Recommendations)
		fmt.Fprintf(a.out, "\nFlow:\n%s\n", p.Result.FlowDiagram)
	}
	fmt.Fprintf(a.out, "\nTasks (%d/%d, %d%%):\n", prog.Completed, prog.Total, prog.Percent)
	for _, t := range p.Tasks() {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %d. %s\n", mark, t.ID, t.Task)
	}
}
