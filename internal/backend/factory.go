// Package backend selects and constructs the record-store variant once at
// process start. Selection is a configuration decision, not core logic: the
// relational service is used when its URL and credential are both present,
// the in-memory fallback otherwise.
package backend

import (
	"context"
	"fmt"

	"paydash/internal/config"
	"paydash/internal/log"
	"paydash/internal/store"
	"paydash/internal/store/memory"
	"paydash/internal/store/postgres"
	"paydash/internal/store/sqlite"
)

// Type of record store backing the service.
type Type string

const (
	Memory   Type = "memory"
	Postgres Type = "postgres"
	SQLite   Type = "sqlite"
)

// Result is the opened store plus its cleanup function.
type Result struct {
	Store   store.Store
	Type    Type
	Cleanup func() error
}

// Open resolves the backend type from config and constructs it.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	logger = logger.WithComponent(log.ComponentBackend)

	switch t := Resolve(cfg); t {
	case Postgres:
		st, err := postgres.New(ctx, cfg.DatabaseURL, cfg.DatabaseServiceKey, cfg.DemoUserID)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		logger.Info("Initialized postgres record store", "demo_user", cfg.DemoUserID)
		return &Result{
			Store: st,
			Type:  t,
			Cleanup: func() error {
				st.Close()
				return nil
			},
		}, nil

	case SQLite:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite record store", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Type: t, Cleanup: st.Close}, nil

	default:
		logger.Info("Initialized in-memory record store; data will not survive a restart")
		return &Result{Store: memory.New(), Type: Memory, Cleanup: func() error { return nil }}, nil
	}
}

// Resolve picks the variant. An explicit DATA_BACKEND wins; in auto mode the
// relational backend is chosen only when both the service URL and the service
// credential are configured.
func Resolve(cfg *config.Config) Type {
	switch Type(cfg.DataBackend) {
	case Memory, Postgres, SQLite:
		return Type(cfg.DataBackend)
	}
	if cfg.DatabaseURL != "" && cfg.DatabaseServiceKey != "" {
		return Postgres
	}
	return Memory
}
