package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/config"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
)

// AuthService реализует регистрацию и вход пользователей.
//
// Ответственность:
//   - регистрация пользователей (email уникален)
//   - аутентификация (логин)
//   - выпуск access токенов
type AuthService struct {
	users UsersRepo

	hasher crypto.PasswordHasher
	jwt    crypto.JWTConfig
	now    func() time.Time

	// хэш-пустышка: вход с неизвестным email тратит столько же времени,
	// сколько и с неверным паролем
	dummyHash string
}

// AuthResult - пользователь и выданный ему токен.
type AuthResult struct {
	User  models.User
	Token string
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) (*AuthService, error) {
	a := cfg.Password.Argon2
	hasher, err := crypto.NewHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      a.Time,
		MemoryKiB: a.MemoryKiB,
		Threads:   a.Threads,
		KeyLen:    a.KeyLen,
		SaltLen:   a.SaltLen,
	})
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	return NewAuthServiceWithHasher(users, hasher, cfg)
}

// NewAuthServiceWithHasher создаёт AuthService с готовым hasher.
// Хэш-пустышка считается сразу: сбой хэширования всплывает при старте, а не при входе.
func NewAuthServiceWithHasher(users UsersRepo, hasher crypto.PasswordHasher, cfg *config.Config) (*AuthService, error) {
	dummy, err := hasher.Hash("contactbook-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("dummy password hash: %w", err)
	}

	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// WithClock подменяет источник времени (для тестов).
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register регистрирует нового пользователя и сразу выдаёт ему токен.
//
// Email сравнивается как есть, без приведения регистра.
//
// Ошибки:
//   - ErrInvalidInput - пустые name/email/password
//   - ErrAlreadyExists - email уже зарегистрирован (в том числе при гонке двух регистраций)
//   - ErrInternal - сбой хранилища, хэширования или подписи токена
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return AuthResult{}, serr.ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, serr.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	// уникальность всё равно проверит ограничение в БД
	user, err := s.users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return AuthResult{}, err
	}

	return s.issue(user)
}

// Login аутентифицирует пользователя и выдаёт токен.
//
// Поведение:
//   - не раскрывает факт существования email
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, serr.ErrInvalidInput
	}
	// получаем юзера по email
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	// проверяем пароль
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := crypto.NewAccessToken(user.ID.String(), s.jwt)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: sign token: %v", serr.ErrInternal, err)
	}
	return AuthResult{User: user, Token: token}, nil
}
