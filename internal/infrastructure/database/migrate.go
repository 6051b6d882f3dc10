package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"school-directory/pkg/logger"
)

// PostgreSQL error codes relevant to idempotent schema setup.
const (
	pgDuplicateDatabase = "42P04"
	pgDuplicateColumn   = "42701"
	pgDuplicateTable    = "42P07"
)

const createSchoolsTable = `
CREATE TABLE IF NOT EXISTS schools (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	contact VARCHAR(15) NOT NULL,
	image TEXT,
	email_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// additiveMigrations are run on every startup after the base table exists.
// Each one either succeeds or fails with "already exists"; anything else
// is logged but does not block startup, the base schema is still usable.
var additiveMigrations = []string{
	`ALTER TABLE schools ADD COLUMN students INTEGER`,
}

// EnsureDatabase connects to the maintenance database and creates the
// application database when it is missing. A concurrent create by another
// instance resolves to duplicate_database and is treated as success.
func EnsureDatabase(ctx context.Context, cfg *DBConfig) error {
	adminDSN := fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/postgres",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port,
	)

	conn, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	// CREATE DATABASE does not support IF NOT EXISTS, hence the code check.
	_, err = conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %q`, cfg.DBName))
	if err != nil && !hasPgCode(err, pgDuplicateDatabase) {
		return fmt.Errorf("create database %s: %w", cfg.DBName, err)
	}

	return nil
}

// Migrate initializes the schema. Safe to run on every startup: the base
// table create is conditional and additive column migrations swallow only
// the duplicate-column case.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, createSchoolsTable); err != nil {
		if !hasPgCode(err, pgDuplicateTable) {
			return fmt.Errorf("create schools table: %w", err)
		}
	}

	for _, stmt := range additiveMigrations {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			if IsDuplicateColumn(err) {
				// Expected steady state once the column exists.
				continue
			}
			logger.Error(fmt.Sprintf("additive migration failed: %s", stmt), err)
		}
	}

	return nil
}

// IsDuplicateColumn reports whether err is PostgreSQL duplicate_column.
// A structured code check, not message matching, so unrelated failures are
// never masked.
func IsDuplicateColumn(err error) bool {
	return hasPgCode(err, pgDuplicateColumn)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
