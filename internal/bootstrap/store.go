package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/Busrapehlivan/project-advisor/config"
	"github.com/Busrapehlivan/project-advisor/internal/kv"
	"github.com/Busrapehlivan/project-advisor/internal/projects/repository"
)

// OpenKV opens the backend named by cfg.Backend.
func OpenKV(ctx context.Context, cfg config.StoreConfig) (kv.Store, error) {
	switch cfg.Backend {
	case "memory":
		return kv.NewMemory(), nil
	case "sqlite":
		return kv.OpenSQLite(cfg.SQLitePath)
	case "redis":
		return kv.OpenRedis(ctx, cfg.RedisURL)
	case "postgres":
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		store, err := kv.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewProjectStore wraps the backend with the configured read and write policies.
func NewProjectStore(backend kv.Store, cfg config.StoreConfig) *repository.ProjectStore {
	if cfg.WriteMode != string(repository.WriteSerialized) {
		log.Printf("[warn] operation=store_init write_mode=%s concurrent task updates may overwrite each other", cfg.WriteMode)
	}
	return repository.NewProjectStore(backend, repository.Options{
		Key:        cfg.Key,
		ReadPolicy: repository.ReadPolicy(cfg.ReadPolicy),
		WriteMode:  repository.WriteMode(cfg.WriteMode),
	})
}
