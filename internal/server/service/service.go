// Package service содержит бизнес-логику приложения (contactbook).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_repos.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/config"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
)

// Repositories - набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Contacts ContactsRepo
	Health   HealthRepo
}

// Services - агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Contacts *ContactsService
	Health   *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (хэширование пароля и параметры JWT).
func NewServices(repos Repositories, cfg *config.Config) (*Services, error) {
	auth, err := NewAuthService(repos.Users, cfg)
	if err != nil {
		return nil, err
	}
	return &Services{
		Auth:     auth,
		Contacts: NewContactsService(repos.Contacts),
		Health:   NewHealthService(repos.Health),
	}, nil
}

// HealthRepo - минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo - репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ContactsRepo - репозиторий контактов. Все чтения и изменения идут по паре (id, owner).
type ContactsRepo interface {
	Create(ctx context.Context, c models.Contact) (models.Contact, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Contact, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (models.Contact, error)
	// Update атомарно применяет patch: updated_at = max(now, updated_at + 1µs).
	Update(ctx context.Context, id, ownerID uuid.UUID, patch models.ContactPatch, now time.Time) (models.Contact, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
