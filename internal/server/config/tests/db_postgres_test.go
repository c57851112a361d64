package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/config"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/logger"
)

func TestOpenDB_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// порт 1 никто не слушает
	_, err := config.OpenDB(ctx, config.DBConfig{DSN: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"}, logger.NewNop())
	require.Error(t, err)
}

// Интеграционный тест с настоящей DB
func TestOpenDB_AndMigrate_WithDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := config.OpenDB(context.Background(), config.DBConfig{DSN: dsn, MaxOpenConns: 2}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, config.MigrateUp(db, logger.NewNop()))
	// повторный запуск - ErrNoChange, не ошибка
	require.NoError(t, config.MigrateUp(db, logger.NewNop()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM contacts`).Scan(&n))
}
