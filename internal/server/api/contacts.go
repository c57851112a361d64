package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/utils"
)

// CreateContact создаёт контакт текущего пользователя.
//
// Требует JWT-аутентификацию. Пустой type сохраняется как personal.
//
// @Summary      Create contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreateContactRequest true "Contact"
// @Success      200 {object} models.Contact
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/contacts [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req api.CreateContactRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	c, err := h.Svc.Contacts.Create(r.Context(), userID, models.ContactFields{
		Name:        req.Name,
		Email:       utils.NilIfEmpty(req.Email),
		PhoneNumber: utils.NilIfEmpty(req.PhoneNumber),
		Type:        req.Type,
	})
	if err != nil {
		h.writeContactError(w, "create contact failed", err, userID, "")
		return
	}

	WriteJSON(w, http.StatusOK, c.DTO())
}

// ListContacts возвращает все контакты текущего пользователя, новые первыми.
//
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.ContactsResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/contacts [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	list, err := h.Svc.Contacts.List(r.Context(), userID)
	if err != nil {
		h.writeContactError(w, "list contacts failed", err, userID, "")
		return
	}

	resp := api.ContactsResponse{Contacts: make([]api.Contact, 0, len(list))}
	for _, c := range list {
		resp.Contacts = append(resp.Contacts, c.DTO())
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetContact возвращает контакт по id.
//
// @Summary      Get contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact ID (UUID)"
// @Success      200 {object} models.Contact
// @Failure      400 {object} models.ErrorResponse "Invalid contact id"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/contacts/{id} [get]
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	c, err := h.Svc.Contacts.GetByID(r.Context(), id, userID)
	if err != nil {
		h.writeContactError(w, "get contact failed", err, userID, id)
		return
	}

	WriteJSON(w, http.StatusOK, c.DTO())
}

// UpdateContact частично обновляет контакт.
//
// Меняются только переданные поля. Пустая строка в email/phoneNumber очищает поле.
//
// @Summary      Update contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                      true "Contact ID (UUID)"
// @Param        request body models.UpdateContactRequest true "Fields to change"
// @Success      200 {object} models.Contact
// @Failure      400 {object} models.ErrorResponse "Invalid input or contact id"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/contacts/{id} [patch]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var req api.UpdateContactRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	c, err := h.Svc.Contacts.Update(r.Context(), id, userID, models.ContactPatch{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Type:        req.Type,
	})
	if err != nil {
		h.writeContactError(w, "update contact failed", err, userID, id)
		return
	}

	WriteJSON(w, http.StatusOK, c.DTO())
}

// DeleteContact удаляет контакт. Успех - 204 без тела.
//
// @Summary      Delete contact
// @Tags         contacts
// @Security     BearerAuth
// @Param        id path string true "Contact ID (UUID)"
// @Success      204
// @Failure      400 {object} models.ErrorResponse "Invalid contact id"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.Svc.Contacts.Delete(r.Context(), id, userID); err != nil {
		h.writeContactError(w, "delete contact failed", err, userID, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeContactError маппит ошибки ContactsService в HTTP-ответ.
func (h *Handler) writeContactError(w http.ResponseWriter, msg string, err error, userID uuid.UUID, contactID string) {
	switch {
	case errors.Is(err, serr.ErrInvalidID):
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidID)
	case errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	case errors.Is(err, serr.ErrUnauthorized), errors.Is(err, serr.ErrUserIDEmpty):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	default:
		h.Log.Sugar().Errorw(msg,
			"error", err,
			"user_id", userID.String(),
			"contact_id", contactID,
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}
