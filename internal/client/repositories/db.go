// Package repositories opens the local SQLite database and hands out the
// repository set backed by it.
package repositories

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/gestorhq/gestorcli/internal/client/migrations"
	"github.com/gestorhq/gestorcli/internal/client/repositories/credentials"
)

type Repositories struct {
	Credentials credentials.Store
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, migrates it, and returns
// the repository set. The caller owns closing via Close.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Credentials: credentials.NewSQLiteStore(db),
	}
	return repos, db, nil
}
