// Package repository - доступ к PostgreSQL. Только SQL, без бизнес-логики:
// проверки владельца выражены условиями WHERE, а ошибки драйвера
// переводятся в ошибки из internal/shared/errors.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"

	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
)

// Коды ошибок PostgreSQL, которые мы различаем.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Option настраивает репозиторий.
type Option func(*base)

// WithQueryTimeout ограничивает время каждого запроса к БД.
func WithQueryTimeout(d time.Duration) Option {
	return func(b *base) { b.timeout = d }
}

type base struct {
	timeout time.Duration
}

func newBase(opts []Option) base {
	var b base
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// internal оборачивает сбой хранилища: наружу уходит ErrInternal,
// текст причины остаётся для логов.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", serr.ErrInternal, op, err)
}
