// Package migrations embeds the schema migrations of every supported sink.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed clickhouse/*.sql postgres/*.sql
var Files embed.FS

// Dialect names a directory of migrations.
type Dialect string

const (
	ClickHouse Dialect = "clickhouse"
	Postgres   Dialect = "postgres"
)

// New returns a migrator applying the embedded migrations of dialect to databaseURL.
func New(dialect Dialect, databaseURL string) (*migrate.Migrate, error) {
	switch dialect {
	case ClickHouse, Postgres:
	default:
		return nil, fmt.Errorf("unknown migrations dialect %q", dialect)
	}

	source, err := iofs.New(Files, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations. It reports false when the schema was already current.
func Up(m *migrate.Migrate) (bool, error) {
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}
