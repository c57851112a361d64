// Package models содержит плоские модели HTTP API, общие для сервера и CLI-клиента.
//
// Теги validate проверяются на сервере до входа в сервисный слой
// (github.com/go-playground/validator/v10).
package models

import "time"

// ContactType - тип контакта.
type ContactType string

const (
	ContactPersonal ContactType = "personal"
	ContactBusiness ContactType = "business"
)

// RegisterRequest - тело POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32"`
}

// LoginRequest - тело POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User - публичная проекция пользователя. Хэш пароля сюда никогда не попадает.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse - ответ регистрации и логина.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Contact - контакт в ответах API.
//
// Поля:
//   - ID: UUID контакта в виде строки
//   - Email, PhoneNumber: опциональны, отсутствуют в JSON если не заданы
//   - Type: personal | business
//   - CreatedAt: время создания, не меняется
//   - UpdatedAt: время последнего изменения
type Contact struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       *string     `json:"email,omitempty"`
	PhoneNumber *string     `json:"phoneNumber,omitempty"`
	Type        ContactType `json:"type"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ContactsResponse - ответ GET /api/contacts.
type ContactsResponse struct {
	Contacts []Contact `json:"contacts"`
}

// CreateContactRequest - тело POST /api/contacts.
//
// Type по умолчанию personal.
type CreateContactRequest struct {
	Name        string      `json:"name" validate:"required"`
	Email       string      `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string      `json:"phoneNumber,omitempty" validate:"omitempty,numeric"`
	Type        ContactType `json:"type,omitempty" validate:"omitempty,oneof=personal business"`
}

// UpdateContactRequest - тело PATCH /api/contacts/{id} (partial update).
//
// Все поля указатели: nil значит "не менять".
// Пустая строка в Email/PhoneNumber очищает поле, пустое Name запрещено.
type UpdateContactRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitnil,min=1"`
	Email       *string      `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber *string      `json:"phoneNumber,omitempty" validate:"omitempty,numeric"`
	Type        *ContactType `json:"type,omitempty" validate:"omitempty,oneof=personal business"`
}

// ErrorResponse - стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse - ответ GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
