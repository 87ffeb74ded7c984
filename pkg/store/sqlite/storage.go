package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

var bootPragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

type Settings struct {
	// DSN is a file path, a file: URI or ":memory:". A sqlite:// prefix is accepted.
	DSN string
}

// NewDB opens the pool, verifies the connection and applies migrations.
// The caller owns the returned pool and must close it.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if strings.TrimSpace(settings.DSN) == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}

	db, err := sql.Open(driverName, withPragmas(settings.DSN))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers; one connection also keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func withPragmas(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	for _, pragma := range bootPragmas {
		if strings.Contains(dsn, pragma) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + pragma
	}
	return dsn
}
