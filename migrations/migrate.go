// Package migrations embeds the SQL schema of the users and sessions tables
// and applies it with goose. Each supported driver has its own directory.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var (
	errNilDB           = errors.New("migration error: db is nil")
	errUnknownDialect  = errors.New("migration error: unknown dialect")
	gooseDialectByName = map[string]string{
		DialectPostgres: "pgx",
		DialectSQLite:   "sqlite3",
	}
)

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errNilDB
	}

	gooseDialect, ok := gooseDialectByName[dialect]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownDialect, dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
