package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Busrapehlivan/project-advisor/config"
	"github.com/Busrapehlivan/project-advisor/internal/bootstrap"
	"github.com/Busrapehlivan/project-advisor/internal/evaluator"
	"github.com/Busrapehlivan/project-advisor/internal/logging"
	"github.com/Busrapehlivan/project-advisor/internal/projects/repository"
	"github.com/Busrapehlivan/project-advisor/internal/projects/service"
)

const usage = `usage: advisor <command> [args]

commands:
  list                          list projects, newest first
  show <id>                     print one project with its tasks
  set <id> <task-id> <true|false>
  toggle <id> <task-id>
  evaluate <level> <idea...>    evaluate an idea and save the project
  export [-format json|yaml]    dump the whole collection
  audit                         strict read of the collection plus invariant checks`

type app struct {
	store *repository.ProjectStore
	svc   *service.ProjectService
	out   io.Writer
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.App.LogLevel)

	ctx := context.Background()
	backend, err := bootstrap.OpenKV(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	store := bootstrap.NewProjectStore(backend, cfg.Store)
	ev := evaluator.New(evaluator.Config{
		APIKey:        cfg.Evaluator.APIKey,
		BaseURL:       cfg.Evaluator.BaseURL,
		Model:         cfg.Evaluator.Model,
		Timeout:       cfg.Evaluator.Timeout,
		RatePerMinute: cfg.Evaluator.RatePerMinute,
	})

	a := &app{store: store, svc: service.NewProjectService(store, ev), out: os.Stdout}
	err = a.run(ctx, os.Args[1:])
	backend.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", usage)
	}

	switch args[0] {
	case "list":
		return a.runList(ctx)
	case "show":
		return a.runShow(ctx, args[1:])
	case "set":
		return a.runSet(ctx, args[1:])
	case "toggle":
		return a.runToggle(ctx, args[1:])
	case "evaluate":
		return a.runEvaluate(ctx, args[1:])
	case "export":
		return a.runExport(ctx, args[1:])
	case "audit":
		return a.runAudit(ctx)
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
}
