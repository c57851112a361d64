// Package migrations хранит SQL-миграции PostgreSQL внутри бинарника.
package migrations

import "embed"

// Postgres - каталог postgres/ с файлами в формате golang-migrate (NNNNNN_name.up.sql / .down.sql).
//
//go:embed postgres/*.sql
var Postgres embed.FS

// PostgresDir - путь к миграциям внутри Postgres.
const PostgresDir = "postgres"
