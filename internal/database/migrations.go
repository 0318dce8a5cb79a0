package database

import (
	"errors"
	"fmt"
	"sheetform/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

// checkDirty fails when the last migration stopped halfway. The schema has to
// be repaired by hand and the version forced back before Up is retried;
// forcing the dirty version itself would mark the broken migration as applied.
// Migration files are numbered consecutively, so the previous version is n-1.
func checkDirty(m versioner) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	if !dirty {
		return nil
	}
	previous := int(version) - 1
	if previous < 1 {
		previous = migratedb.NilVersion
	}
	return fmt.Errorf("database is dirty at version %d: repair the schema by hand, then run `migrate force %d` and restart", version, previous)
}

// Migrations applies every pending migration from source (a migrate source
// URL such as file://migrations) to the database at url.
func Migrations(source, url string) {
	if url == "" {
		logger.Fatal("database url not set", nil)
	}

	migration, err := migrate.New(source, url)
	if err != nil {
		logger.Fatal("migration init error", err)
	}
	defer migration.Close()

	if err := checkDirty(migration); err != nil {
		logger.Fatal("refusing to migrate", err)
	}

	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("migration failed", err)
	} else {
		logger.Info("migrations applied")
	}
}
