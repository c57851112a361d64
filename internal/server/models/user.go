// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"

	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Public возвращает проекцию пользователя без хэша пароля.
func (u User) Public() api.User {
	return api.User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
