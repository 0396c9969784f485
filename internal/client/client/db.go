package client

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/sitegen/internal/client/migrations"
	"github.com/dmitrijs2005/sitegen/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sitegen/internal/dbx"
	"github.com/dmitrijs2005/sitegen/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the local SQLite file at path and
// brings its schema up to date. A leading "~" is expanded.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	resolved, err := filex.Expand(path)
	if err != nil {
		return nil, err
	}
	if _, err := filex.EnsureDir(filepath.Dir(resolved)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", resolved, err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ResetLocalData removes every metadata entry in one transaction and
// reports how many were removed.
func ResetLocalData(ctx context.Context, db *sql.DB) (int, error) {
	var removed int
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var repo metadata.Repository = metadata.NewSQLiteRepository(tx)
		entries, err := repo.List(ctx)
		if err != nil {
			return err
		}
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		removed = len(entries)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("reset local data: %w", err)
	}
	return removed, nil
}
