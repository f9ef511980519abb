package database

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

// Migrate applies every pending *.up.sql file in lexical order and records it in
// schema_migrations. Each file runs in its own transaction.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "create schema_migrations")
	}

	names, err := pendingCandidates(migrationFiles)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		var exists bool
		err := db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name)
		if err != nil {
			return applied, errors.Wrapf(err, "check migration %s", name)
		}
		if exists {
			continue
		}

		body, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return applied, errors.Wrapf(err, "read migration %s", name)
		}

		if err := applyMigration(ctx, db, name, string(body)); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}

	return applied, nil
}

func pendingCandidates(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, name, body string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin migration %s", name)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return errors.Wrapf(err, "apply migration %s", name)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		return errors.Wrapf(err, "record migration %s", name)
	}

	return errors.Wrapf(tx.Commit(), "commit migration %s", name)
}
