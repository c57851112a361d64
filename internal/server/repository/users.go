package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
	base
}

func NewUsersRepository(db *sql.DB, opts ...Option) *UsersRepository {
	return &UsersRepository{db: db, base: newBase(opts)}
}

// Create сохраняет пользователя и возвращает его с присвоенным id.
// Уникальность email обеспечивает ограничение users_email_key.
func (r *UsersRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)

	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal("insert user", err)
	}

	return u, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal("select user by email", err)
	}

	return u, nil
}

// ExistsByEmail - быстрая проверка перед хэшированием пароля.
func (r *UsersRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, internal("check user email", err)
	}
	return exists, nil
}
