// Package crypto содержит криптографические примитивы сервера:
//   - генерацию, подпись и проверку JWT access-токенов;
//   - хэширование и проверку паролей (bcrypt, argon2id).
package crypto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken - токен не прошёл проверку (подпись, срок, claims).
// Снаружи все причины неотличимы.
var ErrInvalidToken = errors.New("invalid token")

// JWTConfig описывает параметры генерации и проверки JWT access-токена.
type JWTConfig struct {
	// Issuer - значение поля iss (кто выдал токен). Пустое - не проверяем.
	Issuer string
	// Audience - значение поля aud (для кого предназначен токен). Пустое - не проверяем.
	Audience string
	// SigningKey - секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL - срок жизни access-токена.
	AccessTTL time.Duration
}

// TokenUser - то, что клиент видит внутри токена: {"user":{"id":"..."}}.
type TokenUser struct {
	ID string `json:"id"`
}

// UserClaims - payload access-токена.
type UserClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит user.id и стандартные RegisteredClaims:
//   - iss, aud (если заданы)
//   - sub (userID)
//   - iat, exp
func NewAccessToken(userID string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := UserClaims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись, срок действия, iss/aud и возвращает claims.
//
// Любая проблема с токеном возвращается как ErrInvalidToken (обёрнутая причиной).
func ParseAccessToken(tokenStr string, cfg JWTConfig) (*UserClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &UserClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.User.ID) == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidToken)
	}
	return claims, nil
}
