package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

const contactColumns = `id, user_id, name, email, phone_number, type, created_at, updated_at`

// ContactsRepository хранит контакты. Каждый запрос, кроме вставки,
// фильтрует по паре (id, user_id): чужой контакт неотличим от отсутствующего.
type ContactsRepository struct {
	db *sql.DB
	base
}

func NewContactsRepository(db *sql.DB, opts ...Option) *ContactsRepository {
	return &ContactsRepository{db: db, base: newBase(opts)}
}

// Create сохраняет контакт. ID присваивает база, время задаёт вызывающий.
//
// Ошибки:
//   - ErrUnauthorized - владельца из токена больше нет
//   - ErrInvalidInput - нарушено ограничение таблицы (пустое имя, неизвестный type)
//   - ErrInternal - ошибка базы данных
func (r *ContactsRepository) Create(ctx context.Context, c models.Contact) (models.Contact, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (user_id, name, email, phone_number, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		c.OwnerID,
		c.Name,
		c.Email,
		c.PhoneNumber,
		string(c.Type),
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID)

	if err != nil {
		return models.Contact{}, mapWriteError("insert contact", err)
	}
	return c, nil
}

// ListByOwner возвращает контакты владельца, новые первыми.
// Пустой результат - пустой срез, не nil.
func (r *ContactsRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Contact, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, ownerID)
	if err != nil {
		return nil, internal("select contacts", err)
	}
	defer rows.Close()

	out := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, internal("scan contact", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, internal("iterate contacts", err)
	}

	return out, nil
}

// GetByIDAndOwner возвращает контакт, только если он принадлежит ownerID.
func (r *ContactsRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (models.Contact, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, internal("select contact", err)
	}
	return c, nil
}

// Update одним запросом меняет только переданные поля контакта (id, user_id).
// Пустые email/phone_number пишутся как NULL. updated_at считается в базе:
// не раньше now и строго позже прежнего значения.
// Если строка не найдена (удалена или чужая) - ErrNotFound.
func (r *ContactsRepository) Update(ctx context.Context, id, ownerID uuid.UUID, p models.ContactPatch, now time.Time) (models.Contact, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 7)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Email != nil {
		set("email", nullIfEmpty(*p.Email))
	}
	if p.PhoneNumber != nil {
		set("phone_number", nullIfEmpty(*p.PhoneNumber))
	}
	if p.Type != nil {
		set("type", string(*p.Type))
	}
	if len(sets) == 0 {
		return models.Contact{}, serr.ErrInvalidInput
	}

	args = append(args, now)
	sets = append(sets, fmt.Sprintf("updated_at = GREATEST($%d::timestamptz, updated_at + interval '1 microsecond')", len(args)))
	args = append(args, id, ownerID)

	query := "UPDATE contacts SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", len(args)-1, len(args)) +
		" RETURNING " + contactColumns

	ctx, cancel := r.ctx(ctx)
	defer cancel()

	c, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, mapWriteError("update contact", err)
	}
	return c, nil
}

// Delete удаляет контакт владельца. Ноль затронутых строк - ErrNotFound.
func (r *ContactsRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return internal("delete contact", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return internal("delete contact rows affected", err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(s rowScanner) (models.Contact, error) {
	var (
		c     models.Contact
		email sql.NullString
		phone sql.NullString
		typ   string
	)
	if err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &email, &phone, &typ, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.Contact{}, err
	}
	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.PhoneNumber = &phone.String
	}
	c.Type = api.ContactType(typ)
	return c, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func mapWriteError(op string, err error) error {
	switch pgCode(err) {
	case pgForeignKeyViolation:
		return serr.ErrUnauthorized
	case pgCheckViolation:
		return serr.ErrInvalidInput
	default:
		return internal(op, err)
	}
}
