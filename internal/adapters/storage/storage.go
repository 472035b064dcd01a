// Package storage elige el motor de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	"pet-care-journal/internal/adapters/storage/memory"
	"pet-care-journal/internal/adapters/storage/postgres"
	"pet-care-journal/internal/adapters/storage/sqlite"
	"pet-care-journal/internal/config"
	"pet-care-journal/internal/domain/diary"
	"pet-care-journal/internal/domain/health"
	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"
	"pet-care-journal/internal/platform/logger"
)

const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// Repos agrupa los repositorios de un motor. Close libera la conexión.
type Repos struct {
	Pets      pets.Repository
	Health    health.Repository
	Diary     diary.Repository
	Reminders reminders.Repository

	Close func() error
}

func Open(ctx context.Context, cfg config.Config, log logger.Logger) (Repos, error) {
	if log == nil {
		log = logger.Nop()
	}

	switch cfg.StoreEngine {
	case "", EngineMemory:
		s := memory.NewStore()
		log.Warn("using in-memory store; data is lost on restart", nil)
		return Repos{
			Pets:      s.Pets(),
			Health:    s.Health(),
			Diary:     s.Diary(),
			Reminders: s.Reminders(),
			Close:     func() error { return nil },
		}, nil

	case EnginePostgres:
		db, err := postgres.Open(ctx, postgres.Options{DSN: cfg.DBDSN, Driver: cfg.DBDriver, Tracing: cfg.EnableTracing})
		if err != nil {
			return Repos{}, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return Repos{}, err
		}
		r := postgres.NewRepos(db)
		log.Info("postgres store ready", logger.Fields{"driver": db.DriverName()})
		return Repos{Pets: r.Pets, Health: r.Health, Diary: r.Diary, Reminders: r.Reminders, Close: db.Close}, nil

	case EngineSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return Repos{}, err
		}
		r := sqlite.NewRepos(db)
		log.Info("sqlite store ready", logger.Fields{"path": cfg.SQLitePath})
		return Repos{
			Pets:      r.Pets,
			Health:    r.Health,
			Diary:     r.Diary,
			Reminders: r.Reminders,
			Close:     func() error { return sqlite.Close(db) },
		}, nil
	}
	return Repos{}, fmt.Errorf("unsupported store engine %q", cfg.StoreEngine)
}
