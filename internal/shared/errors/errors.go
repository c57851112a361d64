// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (email не найден или пароль не подошёл, снаружи не различаем)
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Пользователь с таким email уже существует
	ErrAlreadyExists = errors.New("user already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Тело запроса больше server.max_body_bytes
	ErrPayloadTooLarge = errors.New("payload too large")
)

// только для контактов
var (
	// id контакта синтаксически невалиден (это не UUID)
	ErrInvalidID   = errors.New("invalid contact id")
	ErrUserIDEmpty = errors.New("user id cannot be empty")
)
