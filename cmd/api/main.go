package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Busrapehlivan/project-advisor/config"
	"github.com/Busrapehlivan/project-advisor/internal/bootstrap"
	"github.com/Busrapehlivan/project-advisor/internal/evaluator"
	"github.com/Busrapehlivan/project-advisor/internal/projects/audit"
	"github.com/Busrapehlivan/project-advisor/internal/projects/service"
)

const serviceName = "project-advisor"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.OpenKV(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer backend.Close()

	store := bootstrap.NewProjectStore(backend, cfg.Store)

	if cfg.Evaluator.APIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set - evaluations will be rejected upstream")
	}
	ev := evaluator.New(evaluator.Config{
		APIKey:        cfg.Evaluator.APIKey,
		BaseURL:       cfg.Evaluator.BaseURL,
		Model:         cfg.Evaluator.Model,
		Timeout:       cfg.Evaluator.Timeout,
		RatePerMinute: cfg.Evaluator.RatePerMinute,
	})

	if cfg.Audit.Schedule != "" {
		scheduler := audit.NewScheduler(store)
		if err := scheduler.Start(cfg.Audit.Schedule); err != nil {
			log.Fatalf("audit: %v", err)
		}
		defer scheduler.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Store:          backend,
		Projects:       service.NewProjectService(store, ev),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (store=%s, env=%s)", cfg.Server.Port, cfg.Store.Backend, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
