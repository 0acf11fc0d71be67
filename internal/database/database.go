package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"live-reservation/internal/config"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
)

// Open connects to the configured backend and returns a bun handle.
// "sqlite" opens the embedded store at cfg.Path; "postgres" dials the
// networked store at cfg.DSN with a short retry loop.
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*bun.DB, error) {
	switch cfg.Backend {
	case "postgres":
		return openPostgres(cfg.DSN, log)
	case "sqlite", "":
		return openSQLite(cfg.Path, log)
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}
}

func openSQLite(path string, log *logger.Logger) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
	}
	// The embedded store serializes writes; a single connection avoids
	// table-lock errors under concurrent requests.
	sqldb.SetMaxOpenConns(1)

	log.Info("DATABASE", fmt.Sprintf("SQLite store opened at %s", path))
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func openPostgres(dsn string, log *logger.Logger) (*bun.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN not set for postgres backend")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", maxRetries, err)
	}

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// Bootstrap idempotently creates the schema and applies defensive
// column additions for events columns that later revisions introduced.
// Add-column failures are swallowed: on an existing installation the
// column is already there.
func Bootstrap(ctx context.Context, db *bun.DB, log *logger.Logger) error {
	tables := []interface{}{
		(*models.Event)(nil),
		(*models.Reservation)(nil),
		(*models.User)(nil),
		(*models.SiteInfo)(nil),
	}
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}

	evolvedColumns := []string{
		"description TEXT",
		"open_time TEXT",
		"start_time TEXT",
		"performance_time TEXT",
		"price TEXT",
		"image_data TEXT",
	}
	for _, col := range evolvedColumns {
		if _, err := db.ExecContext(ctx, "ALTER TABLE events ADD COLUMN "+col); err != nil {
			log.Debug("DATABASE", fmt.Sprintf("Skipping column add (%s): %v", col, err))
		}
	}

	log.Info("DATABASE", "Schema bootstrap complete")
	return nil
}
