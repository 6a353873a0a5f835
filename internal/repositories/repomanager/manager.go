// Package repomanager vends repository implementations for the configured
// database and runs the embedded schema migrations with goose.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server rather
// than a SQLite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to dsn, migrates the schema and returns the handle with the
// matching RepositoryManager. PostgreSQL URLs use pgx; any other value is a
// SQLite file path (or ":memory:"). The caller owns the returned *sql.DB.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		driver string
		m      RepositoryManager
	)
	if IsPostgresDSN(dsn) {
		driver, m = "pgx", NewPostgresRepositoryManager()
	} else {
		driver, m = "sqlite", NewSQLiteRepositoryManager()
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		// One connection serializes writers and keeps ":memory:" databases
		// from splitting across connections.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connect %s database: %w", driver, err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate %s database: %w", driver, err)
	}

	return db, m, nil
}
