package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	servermodels "github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
	models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/utils"
)

// Создание контакта: 200 и тело контакта
func TestHandler_CreateContact_OK(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner := uuid.New()
	id := uuid.New()

	deps.contacts.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c servermodels.Contact) (servermodels.Contact, error) {
			require.Equal(t, owner, c.OwnerID)
			require.Equal(t, models.ContactBusiness, c.Type)
			require.Nil(t, c.Email)
			c.ID = id
			return c, nil
		})

	body := models.CreateContactRequest{Name: "Bob", PhoneNumber: "5551234", Type: models.ContactBusiness}
	req := authed(httptest.NewRequest(http.MethodPost, "/api/contacts", jsonBody(t, body)), owner, "")
	rec := httptest.NewRecorder()
	h.CreateContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Contact
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, id.String(), got.ID)
	require.Equal(t, "5551234", *got.PhoneNumber)
	require.Nil(t, got.Email)
	require.Equal(t, got.CreatedAt, got.UpdatedAt)
}

// JSON-поля в camelCase, пустые опциональные поля отсутствуют
func TestHandler_CreateContact_JSONShape(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner := uuid.New()

	deps.contacts.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c servermodels.Contact) (servermodels.Contact, error) {
			c.ID = uuid.New()
			return c, nil
		})

	req := authed(httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{"name":"Bob","phoneNumber":"123"}`)), owner, "")
	rec := httptest.NewRecorder()
	h.CreateContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	require.Equal(t, "123", raw["phoneNumber"])
	require.Equal(t, "personal", raw["type"])
	require.Contains(t, raw, "createdAt")
	require.Contains(t, raw, "updatedAt")
	require.NotContains(t, raw, "email")
	require.NotContains(t, raw, "user_id")
}

func TestHandler_CreateContact_Validation(t *testing.T) {
	cases := map[string]string{
		"no name":       `{"email":"bob@mail.com"}`,
		"blank name":    `{"name":"   "}`,
		"bad email":     `{"name":"Bob","email":"nope"}`,
		"bad phone":     `{"name":"Bob","phoneNumber":"+1 (555)"}`,
		"bad type":      `{"name":"Bob","type":"friend"}`,
		"unknown":       `{"name":"Bob","age":3}`,
		"not an object": `[]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := NewTestHandler(t)

			req := authed(httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(body)), uuid.New(), "")
			rec := httptest.NewRecorder()
			h.CreateContact(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// Без userID в контексте
func TestHandler_CreateContact_NoUser(t *testing.T) {
	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{"name":"Bob"}`))
	rec := httptest.NewRecorder()
	h.CreateContact(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Пустой список - [] а не null
func TestHandler_ListContacts_Empty(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner := uuid.New()

	deps.contacts.EXPECT().ListByOwner(gomock.Any(), owner).Return([]servermodels.Contact{}, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/contacts", nil), owner, "")
	rec := httptest.NewRecorder()
	h.ListContacts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"contacts":[]}`, rec.Body.String())
}

func TestHandler_ListContacts_OK(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner := uuid.New()
	now := time.Now().UTC()

	deps.contacts.EXPECT().ListByOwner(gomock.Any(), owner).Return([]servermodels.Contact{
		{ID: uuid.New(), OwnerID: owner, Name: "B", Type: models.ContactPersonal, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), OwnerID: owner, Name: "A", Type: models.ContactPersonal, CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
	}, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/contacts", nil), owner, "")
	rec := httptest.NewRecorder()
	h.ListContacts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ContactsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Contacts, 2)
	require.Equal(t, "B", resp.Contacts[0].Name)
}

func TestHandler_ListContacts_Internal(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner := uuid.New()

	deps.contacts.EXPECT().ListByOwner(gomock.Any(), owner).Return(nil, serr.ErrInternal)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/contacts", nil), owner, "")
	rec := httptest.NewRecorder()
	h.ListContacts(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, serr.ErrInternal.Error(), decodeError(t, rec))
}

// Невалидный id - 400
func TestHandler_GetContact_InvalidID(t *testing.T) {
	h, _ := NewTestHandler(t)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/contacts/123", nil), uuid.New(), "123")
	rec := httptest.NewRecorder()
	h.GetContact(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, serr.ErrInvalidID.Error(), decodeError(t, rec))
}

// Чужой контакт - 404
func TestHandler_GetContact_NotFound(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner, id := uuid.New(), uuid.New()

	deps.contacts.EXPECT().GetByIDAndOwner(gomock.Any(), id, owner).Return(servermodels.Contact{}, serr.ErrNotFound)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/contacts/"+id.String(), nil), owner, id.String())
	rec := httptest.NewRecorder()
	h.GetContact(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetContact_OK(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner, id := uuid.New(), uuid.New()

	deps.contacts.EXPECT().GetByIDAndOwner(gomock.Any(), id, owner).
		Return(servermodels.Contact{ID: id, OwnerID: owner, Name: "Bob", Email: utils.StrPtr("bob@mail.com"), Type: models.ContactPersonal}, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/contacts/"+id.String(), nil), owner, id.String())
	rec := httptest.NewRecorder()
	h.GetContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Contact
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, "bob@mail.com", *got.Email)
}

// PATCH: пустая строка очищает email
func TestHandler_UpdateContact_ClearEmail(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner, id := uuid.New(), uuid.New()
	created := time.Now().UTC().Add(-time.Hour)

	deps.contacts.EXPECT().Update(gomock.Any(), id, owner, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, p servermodels.ContactPatch, now time.Time) (servermodels.Contact, error) {
			require.Nil(t, p.Name)
			require.Equal(t, "", *p.Email)
			c := servermodels.Contact{ID: id, OwnerID: owner, Name: "Bob", Email: utils.StrPtr("bob@mail.com"), Type: models.ContactPersonal, CreatedAt: created, UpdatedAt: created}
			c.Apply(p)
			c.UpdatedAt = now
			return c, nil
		})

	req := authed(httptest.NewRequest(http.MethodPatch, "/api/contacts/"+id.String(), strings.NewReader(`{"email":""}`)), owner, id.String())
	rec := httptest.NewRecorder()
	h.UpdateContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Contact
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Nil(t, got.Email)
	require.Equal(t, "Bob", got.Name)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))
}

// PATCH: пустое имя запрещено
func TestHandler_UpdateContact_EmptyName(t *testing.T) {
	h, _ := NewTestHandler(t)
	id := uuid.NewString()

	req := authed(httptest.NewRequest(http.MethodPatch, "/api/contacts/"+id, strings.NewReader(`{"name":""}`)), uuid.New(), id)
	rec := httptest.NewRecorder()
	h.UpdateContact(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// PATCH без полей - invalid input, в хранилище не ходим
func TestHandler_UpdateContact_EmptyPatch(t *testing.T) {
	h, _ := NewTestHandler(t)
	id := uuid.NewString()

	req := authed(httptest.NewRequest(http.MethodPatch, "/api/contacts/"+id, strings.NewReader(`{}`)), uuid.New(), id)
	rec := httptest.NewRecorder()
	h.UpdateContact(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, serr.ErrInvalidInput.Error(), decodeError(t, rec))
}

func TestHandler_UpdateContact_NotFound(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner, id := uuid.New(), uuid.New()

	deps.contacts.EXPECT().Update(gomock.Any(), id, owner, gomock.Any(), gomock.Any()).Return(servermodels.Contact{}, serr.ErrNotFound)

	req := authed(httptest.NewRequest(http.MethodPatch, "/api/contacts/"+id.String(), strings.NewReader(`{"name":"X"}`)), owner, id.String())
	rec := httptest.NewRecorder()
	h.UpdateContact(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// Удаление: 204 без тела
func TestHandler_DeleteContact_OK(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner, id := uuid.New(), uuid.New()

	deps.contacts.EXPECT().Delete(gomock.Any(), id, owner).Return(nil)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/contacts/"+id.String(), nil), owner, id.String())
	rec := httptest.NewRecorder()
	h.DeleteContact(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestHandler_DeleteContact_NotFound(t *testing.T) {
	h, deps := NewTestHandler(t)
	owner, id := uuid.New(), uuid.New()

	deps.contacts.EXPECT().Delete(gomock.Any(), id, owner).Return(serr.ErrNotFound)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/contacts/"+id.String(), nil), owner, id.String())
	rec := httptest.NewRecorder()
	h.DeleteContact(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// Health
func TestHandler_Health(t *testing.T) {
	h, deps := NewTestHandler(t)

	deps.health.EXPECT().Ping(gomock.Any()).Return(nil)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	deps.health.EXPECT().Ping(gomock.Any()).Return(serr.ErrInternal)
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
