// Package config содержит инициализацию подключения к базе данных сервера.
//
// Пакет выполняет:
//   - открытие пула соединений с PostgreSQL (через драйвер pgx);
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) из встроенных в бинарник SQL-файлов.
//
// Подключение не хранится глобально: *sql.DB возвращается вызывающему
// и передаётся в репозитории при сборке приложения.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-contactbook/migrations"
)

// OpenDB открывает пул соединений по настройкам DBConfig и проверяет его Ping.
func OpenDB(ctx context.Context, cfg DBConfig, log *logger.HTTPLogger) (*sql.DB, error) {
	customLog := log.Sugar()

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err = db.PingContext(ctx); err != nil {
		customLog.Errorf("error check db connection: %v", err)
		db.Close()
		return nil, err
	}
	return db, nil
}

// newMigrator собирает golang-migrate поверх уже открытого *sql.DB.
func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrations: %w", err)
	}
	return m, nil
}

// MigrateUp применяет все новые миграции.
// Если миграции уже применены, migrate.ErrNoChange не считается ошибкой.
func MigrateUp(db *sql.DB, log *logger.HTTPLogger) error {
	customLog := log.Sugar()

	m, err := newMigrator(db)
	if err != nil {
		customLog.Errorf("error preparing migrations: %v", err)
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		customLog.Errorf("error applying migrations: %v", err)
		return err
	}

	customLog.Info("migrations applied successfully")
	return nil
}

// MigrateDown откатывает одну последнюю миграцию.
func MigrateDown(db *sql.DB, log *logger.HTTPLogger) error {
	customLog := log.Sugar()

	m, err := newMigrator(db)
	if err != nil {
		customLog.Errorf("error preparing migrations: %v", err)
		return err
	}

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		customLog.Errorf("error rolling back migration: %v", err)
		return err
	}

	customLog.Info("last migration rolled back")
	return nil
}
