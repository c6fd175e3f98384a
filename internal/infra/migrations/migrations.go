package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// ErrMigrate возвращается при ошибках применения миграций
var ErrMigrate = errors.New("migrations: failed to migrate")

type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет встроенные SQL-миграции к PostgreSQL
type Migrator struct {
	m      *migrate.Migrate
	logger Logger
}

// Source возвращает драйвер встроенных миграций
func Source() (source.Driver, error) {
	return iofs.New(files, "sql")
}

// New создает мигратор поверх открытого соединения
func New(db *sql.DB, dbName string, logger Logger) (*Migrator, error) {
	src, err := Source()
	if err != nil {
		return nil, fmt.Errorf("%w: open embedded source: %v", ErrMigrate, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{DatabaseName: dbName})
	if err != nil {
		return nil, fmt.Errorf("%w: init postgres driver: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("%w: init migrate: %v", ErrMigrate, err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up применяет все новые миграции
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info("Migrations: schema is up to date")
			return nil
		}
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}
	mg.logVersion("up")
	return nil
}

// Down откатывает steps последних миграций
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("%w: steps must be positive", ErrMigrate)
	}
	if err := mg.m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info("Migrations: nothing to roll back")
			return nil
		}
		return fmt.Errorf("%w: down %d: %v", ErrMigrate, steps, err)
	}
	mg.logVersion("down")
	return nil
}

func (mg *Migrator) logVersion(direction string) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		mg.logger.Info("Migrations: %s done", direction)
		return
	}
	mg.logger.Info("Migrations: %s done, version=%d, dirty=%t", direction, version, dirty)
}
