package models

import (
	"time"

	"github.com/google/uuid"

	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

// Contact - серверная модель контакта. Владелец задаётся OwnerID,
// все выборки и изменения идут только по паре (ID, OwnerID).
type Contact struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Email       *string
	PhoneNumber *string
	Type        api.ContactType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactFields - поля нового контакта.
type ContactFields struct {
	Name        string
	Email       *string
	PhoneNumber *string
	Type        api.ContactType
}

// ContactPatch - частичное обновление. nil значит "поле не передано".
type ContactPatch struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Type        *api.ContactType
}

// Empty сообщает, что в patch нет ни одного поля.
func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PhoneNumber == nil && p.Type == nil
}

// Apply применяет patch к контакту. Пустые email/phoneNumber очищают поле.
func (c *Contact) Apply(p ContactPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = optional(*p.Email)
	}
	if p.PhoneNumber != nil {
		c.PhoneNumber = optional(*p.PhoneNumber)
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
}

// DTO переводит контакт в модель API.
func (c Contact) DTO() api.Contact {
	return api.Contact{
		ID:          c.ID.String(),
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Type:        c.Type,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ValidContactType проверяет значение enum.
func ValidContactType(t api.ContactType) bool {
	return t == api.ContactPersonal || t == api.ContactBusiness
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
