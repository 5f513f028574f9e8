package main

import (
	"context"
	"database/sql"
	"time"

	"clinic-medications/internal/adapters/cache/redis"
	"clinic-medications/internal/adapters/catalog"
	"clinic-medications/internal/adapters/storage/memory"
	"clinic-medications/internal/adapters/storage/postgres"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/domain/sets"
	"clinic-medications/internal/platform/config"
	"clinic-medications/internal/platform/logger"

	goredis "github.com/redis/go-redis/v9"
)

type stores struct {
	Kind        string
	Medications medications.Repository
	Sets        sets.Repository

	db  *sql.DB
	rdb *goredis.Client
}

func (s *stores) Close() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
}

// openStores elige Postgres si hay DSN; si no, memoria. Un store vacío se
// siembra con el catálogo. Con redis.addr configurado, las lecturas por ID
// pasan por la cache.
func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	st := &stores{}

	if cfg.DB.DSN != "" {
		db, err := postgres.Open(cfg.DB.DSN, postgres.PoolOptions{
			MaxOpenConns: cfg.DB.MaxOpenConns,
			MaxIdleConns: cfg.DB.MaxIdleConns,
		})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		st.Kind = "postgres"
		st.db = db
		st.Medications = postgres.NewMedicationsRepo(db)
		st.Sets = postgres.NewSetsRepo(db)
	} else {
		st.Kind = "memory"
		st.Medications = memory.NewMedicationRepo()
		st.Sets = memory.NewSetRepo()
	}

	if cfg.Catalog.SeedFile != "" {
		f, err := catalog.Load(cfg.Catalog.SeedFile)
		if err != nil {
			st.Close()
			return nil, err
		}
		seeded, err := catalog.SeedIfEmpty(ctx, f, st.Medications, st.Sets, time.Now())
		if err != nil {
			st.Close()
			return nil, err
		}
		if seeded {
			log.Info("catalog seeded", map[string]any{
				"file":        cfg.Catalog.SeedFile,
				"storage":     st.Kind,
				"medications": len(f.Medications),
				"sets":        len(f.Sets),
			})
		}
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Dial(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			st.Close()
			return nil, err
		}
		st.rdb = rdb
		st.Medications = redis.NewMedicationRepo(st.Medications, rdb, cfg.Redis.TTL, log.With(map[string]any{"module": "cache"}))
	}

	return st, nil
}
