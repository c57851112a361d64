package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/api"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/config"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-contactbook/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/logger"
	models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

type testDeps struct {
	users    *svcmocks.MockUsersRepo
	contacts *svcmocks.MockContactsRepo
	health   *svcmocks.MockHealthRepo
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "issuer",
			Audience:  "audience",
			AccessTTL: time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			Hasher: "bcrypt",
			Bcrypt: config.BcryptConfig{Cost: bcrypt.MinCost},
		},
	}
}

// NewTestHandler создаёт Handler с моками и конфигом через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	deps := testDeps{
		users:    svcmocks.NewMockUsersRepo(ctrl),
		contacts: svcmocks.NewMockContactsRepo(ctrl),
		health:   svcmocks.NewMockHealthRepo(ctrl),
	}

	cfg := testConfig()
	svc, err := service.NewServices(service.Repositories{
		Users:    deps.users,
		Contacts: deps.contacts,
		Health:   deps.health,
	}, cfg)
	require.NoError(t, err)

	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)

	return api.NewHandler(svc, logger.NewNop(), verifier), deps
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// authed добавляет в запрос userID (как после AuthMiddleware) и параметр {id}
func authed(r *http.Request, userID uuid.UUID, id string) *http.Request {
	ctx := middleware.WithUserID(r.Context(), userID)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
