package ticket

import (
	"context"
	"database/sql"

	"github.com/k1networth/itdesk/internal/shared/config"
	"github.com/k1networth/itdesk/internal/shared/db"
)

// OpenStore constructs the backend selected by cfg.Driver. The caller owns the
// returned Store and must Close it.
func OpenStore(ctx context.Context, cfg config.StorageConfig, opts ...Option) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverMemory:
		return NewInMemoryStore(opts...), nil
	case config.DriverPostgres:
		pg, err := db.OpenPostgres(ctx, db.PostgresConfig{DatabaseURL: cfg.URL})
		if err != nil {
			return nil, err
		}
		return withHandle(pg, func() (Store, error) { return NewPostgresStore(ctx, pg, opts...) })
	default:
		lite, err := db.OpenSQLite(ctx, db.SQLiteConfig{Path: cfg.Path})
		if err != nil {
			return nil, err
		}
		return withHandle(lite, func() (Store, error) { return NewSQLiteStore(ctx, lite, opts...) })
	}
}

func withHandle(h *sql.DB, build func() (Store, error)) (Store, error) {
	s, err := build()
	if err != nil {
		_ = h.Close()
		return nil, err
	}
	return s, nil
}
