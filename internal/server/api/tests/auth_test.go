package tests

import (
	"bytes"
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
	"golang.org/x/crypto/bcrypt"

	servermodels "github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
	models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

func TestHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, serr.ErrBadJSON.Error(), decodeError(t, rec))
}

// Неизвестные поля отвергаются
func TestHandler_Register_UnknownField(t *testing.T) {
	h, _ := NewTestHandler(t)

	body := `{"name":"Ann","email":"ann@mail.com","password":"secret123","admin":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Правила валидации регистрации
func TestHandler_Register_Validation(t *testing.T) {
	cases := map[string]models.RegisterRequest{
		"no name":        {Email: "ann@mail.com", Password: "secret123"},
		"bad email":      {Name: "Ann", Email: "not-an-email", Password: "secret123"},
		"short password": {Name: "Ann", Email: "ann@mail.com", Password: "short"},
		"long password":  {Name: "Ann", Email: "ann@mail.com", Password: strings.Repeat("x", 33)},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := NewTestHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, decodeError(t, rec), serr.ErrInvalidInput.Error())
		})
	}
}

// Слишком большое тело
func TestHandler_Register_BodyTooLarge(t *testing.T) {
	h, _ := NewTestHandler(t)
	h.MaxBodyBytes = 64

	body := models.RegisterRequest{Name: strings.Repeat("a", 200), Email: "ann@mail.com", Password: "secret123"}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// Успешная регистрация: 200, токен и публичный пользователь без хэша
func TestHandler_Register_OK(t *testing.T) {
	h, deps := NewTestHandler(t)
	id := uuid.New()

	deps.users.EXPECT().ExistsByEmail(gomock.Any(), "ann@mail.com").Return(false, nil)
	deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u servermodels.User) (servermodels.User, error) {
			u.ID = id
			return u, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		jsonBody(t, models.RegisterRequest{Name: "Ann", Email: "ann@mail.com", Password: "secret123"}))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotContains(t, rec.Body.String(), "password")

	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, id.String(), resp.User.ID)
	require.Equal(t, "Ann", resp.User.Name)
}

// Пароль из пробелов и 20 эмодзи (80 байт) проходят валидацию и хэшируются без 500
func TestHandler_Register_UnusualPasswords(t *testing.T) {
	for name, password := range map[string]string{
		"eight spaces": "        ",
		"twenty emoji": strings.Repeat("😀", 20),
	} {
		t.Run(name, func(t *testing.T) {
			h, deps := NewTestHandler(t)

			deps.users.EXPECT().ExistsByEmail(gomock.Any(), "ann@mail.com").Return(false, nil)
			deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, u servermodels.User) (servermodels.User, error) {
					require.NotEmpty(t, u.PasswordHash)
					u.ID = uuid.New()
					return u, nil
				})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
				jsonBody(t, models.RegisterRequest{Name: "Ann", Email: "ann@mail.com", Password: password}))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

// Email уже занят
func TestHandler_Register_Conflict(t *testing.T) {
	h, deps := NewTestHandler(t)

	deps.users.EXPECT().ExistsByEmail(gomock.Any(), "ann@mail.com").Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		jsonBody(t, models.RegisterRequest{Name: "Ann", Email: "ann@mail.com", Password: "secret123"}))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, serr.ErrAlreadyExists.Error(), decodeError(t, rec))
}

// Сбой хранилища - общий 500 без деталей
func TestHandler_Register_Internal(t *testing.T) {
	h, deps := NewTestHandler(t)

	deps.users.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).
		Return(false, serr.ErrInternal)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		jsonBody(t, models.RegisterRequest{Name: "Ann", Email: "ann@mail.com", Password: "secret123"}))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, serr.ErrInternal.Error(), decodeError(t, rec))
}

func TestHandler_Login_OK(t *testing.T) {
	h, deps := NewTestHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := servermodels.User{ID: uuid.New(), Name: "Ann", Email: "ann@mail.com", PasswordHash: string(hash), CreatedAt: time.Now()}

	deps.users.EXPECT().GetByEmail(gomock.Any(), "ann@mail.com").Return(user, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, models.LoginRequest{Email: "ann@mail.com", Password: "secret123"}))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, user.ID.String(), resp.User.ID)
}

// Неверные учётные данные
func TestHandler_Login_InvalidCredentials(t *testing.T) {
	h, deps := NewTestHandler(t)

	deps.users.EXPECT().GetByEmail(gomock.Any(), "nobody@mail.com").Return(servermodels.User{}, serr.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, models.LoginRequest{Email: "nobody@mail.com", Password: "secret123"}))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, serr.ErrInvalidCredentials.Error(), decodeError(t, rec))
}

func TestHandler_Login_Validation(t *testing.T) {
	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, models.LoginRequest{Email: "ann@mail.com"}))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
