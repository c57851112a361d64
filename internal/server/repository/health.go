package repository

import (
	"context"
	"database/sql"
)

type HealthRepository struct {
	db *sql.DB
	base
}

func NewHealthRepository(db *sql.DB, opts ...Option) *HealthRepository {
	return &HealthRepository{db: db, base: newBase(opts)}
}

// Ping проверяет, что база отвечает.
func (r *HealthRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return internal("ping", err)
	}
	return nil
}
