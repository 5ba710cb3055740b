package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var schemaFiles embed.FS

// Apply brings the schema for query_events and stats_snapshots up to date.
// A dirty version marker left by an interrupted run is repaired first. When
// apply is false the current version is logged and nothing is changed.
func Apply(db *sql.DB, apply bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}

	if dirty {
		if err := repairDirty(m, version); err != nil {
			return err
		}
	}

	if !apply {
		slog.Info("Schema migration disabled, leaving schema as is",
			"version", version)
		return nil
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("Schema already up to date", "version", version)
			return nil
		}
		return fmt.Errorf("apply schema migrations: %w", err)
	}

	applied, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version after migration: %w", err)
	}
	slog.Info("Schema migrated", "from", version, "to", applied)
	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(schemaFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("prepare migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("prepare migrator: %w", err)
	}
	return m, nil
}

// repairDirty clears an interrupted-migration marker. Every step here is
// idempotent DDL, so forcing back to the recorded version is safe.
func repairDirty(m *migrate.Migrate, version uint) error {
	slog.Warn("Schema version marked dirty, repairing", "version", version)
	if err := m.Force(int(version)); err != nil {
		return fmt.Errorf("repair dirty schema version %d: %w", version, err)
	}
	slog.Info("Dirty schema version repaired", "version", version)
	return nil
}
