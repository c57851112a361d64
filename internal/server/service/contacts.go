package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

// ContactsService реализует CRUD контактов в пределах одного владельца.
//
// Чужой контакт для сервиса не существует: все операции по id
// возвращают ErrNotFound и для отсутствующего, и для чужого контакта.
type ContactsService struct {
	repo ContactsRepo
	now  func() time.Time
}

func NewContactsService(repo ContactsRepo) *ContactsService {
	return &ContactsService{repo: repo, now: time.Now}
}

// WithClock подменяет источник времени (для тестов).
func (s *ContactsService) WithClock(now func() time.Time) *ContactsService {
	s.now = now
	return s
}

// Create создаёт контакт владельца. Пустой type превращается в personal.
func (s *ContactsService) Create(ctx context.Context, ownerID uuid.UUID, f models.ContactFields) (models.Contact, error) {
	if ownerID == uuid.Nil {
		return models.Contact{}, serr.ErrUserIDEmpty
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		return models.Contact{}, serr.ErrInvalidInput
	}

	typ := f.Type
	if typ == "" {
		typ = api.ContactPersonal
	}
	if !models.ValidContactType(typ) {
		return models.Contact{}, serr.ErrInvalidInput
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	c := models.Contact{
		OwnerID:     ownerID,
		Name:        name,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
		Type:        typ,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// пустая строка и отсутствие поля хранятся одинаково (NULL)
	c.Apply(models.ContactPatch{Email: f.Email, PhoneNumber: f.PhoneNumber})

	return s.repo.Create(ctx, c)
}

// List возвращает все контакты владельца, новые первыми.
func (s *ContactsService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Contact, error) {
	if ownerID == uuid.Nil {
		return nil, serr.ErrUserIDEmpty
	}

	contacts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

// GetByID возвращает контакт владельца.
//
// Ошибки:
//   - ErrInvalidID - id не UUID
//   - ErrNotFound - контакта нет или он чужой
func (s *ContactsService) GetByID(ctx context.Context, id string, ownerID uuid.UUID) (models.Contact, error) {
	contactID, err := parseContactID(id, ownerID)
	if err != nil {
		return models.Contact{}, err
	}
	return s.repo.GetByIDAndOwner(ctx, contactID, ownerID)
}

// Update меняет только переданные поля.
// Пустые email/phoneNumber очищают поле, updatedAt всегда сдвигается вперёд.
func (s *ContactsService) Update(ctx context.Context, id string, ownerID uuid.UUID, patch models.ContactPatch) (models.Contact, error) {
	contactID, err := parseContactID(id, ownerID)
	if err != nil {
		return models.Contact{}, err
	}
	if patch.Empty() {
		return models.Contact{}, serr.ErrInvalidInput
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Contact{}, serr.ErrInvalidInput
		}
		patch.Name = &name
	}
	if patch.Type != nil && !models.ValidContactType(*patch.Type) {
		return models.Contact{}, serr.ErrInvalidInput
	}

	// запись атомарна на стороне хранилища: параллельные патчи разных полей не теряются
	return s.repo.Update(ctx, contactID, ownerID, patch, s.now().UTC().Truncate(time.Microsecond))
}

// Delete удаляет контакт владельца. Повторное удаление - ErrNotFound.
func (s *ContactsService) Delete(ctx context.Context, id string, ownerID uuid.UUID) error {
	contactID, err := parseContactID(id, ownerID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, contactID, ownerID)
}

func parseContactID(id string, ownerID uuid.UUID) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, serr.ErrUserIDEmpty
	}
	contactID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil || contactID == uuid.Nil {
		return uuid.Nil, serr.ErrInvalidID
	}
	return contactID, nil
}
