// В этом файле описаны методы клиента для эндпоинтов аутентификации.
package api

import models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"

// Register регистрирует пользователя и возвращает его токен.
func (c *Client) Register(name, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON("/api/auth/register", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp, err
}

// Login выполняет вход и возвращает токен на 1 час.
func (c *Client) Login(email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON("/api/auth/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}
