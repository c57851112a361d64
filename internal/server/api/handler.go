// Package api реализует HTTP-слой сервера contactbook.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - валидацию тел запросов (validator);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
//
// Маршруты и middleware собираются в internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-contactbook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/logger"
	api "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes - лимит тела запроса, если он не задан в конфиге.
const DefaultMaxBodyBytes int64 = 1 << 20

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse = api.ErrorResponse

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации;
//   - MaxBodyBytes: лимит размера тела запроса.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc          *service.Services
	Log          *logger.HTTPLogger
	Verifier     *middleware.JWTVerifier
	MaxBodyBytes int64

	validate *validator.Validate
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// svc - набор сервисов приложения,
// log - логгер,
// verifier - JWT-проверка и middleware авторизации.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	if log == nil {
		log = logger.NewNop()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках валидации используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		Svc:          svc,
		Log:          log,
		Verifier:     verifier,
		MaxBodyBytes: DefaultMaxBodyBytes,
		validate:     v,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// WriteJSON пишет v как JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса в dst и валидирует его.
//
// Ошибки:
//   - ErrPayloadTooLarge - тело больше MaxBodyBytes;
//   - ErrBadJSON - синтаксическая ошибка, неизвестные поля, лишние данные после объекта;
//   - ErrInvalidInput - не прошли теги validate (причина в тексте ошибки).
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serr.ErrPayloadTooLarge
		}
		return serr.ErrBadJSON
	}
	// в теле должен быть ровно один JSON-объект
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return serr.ErrBadJSON
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %s", serr.ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return serr.ErrInvalidInput
	}
	return nil
}

// writeDecodeError отвечает на ошибку decodeJSON.
func writeDecodeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, serr.ErrPayloadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, serr.ErrPayloadTooLarge)
	case errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err)
	default:
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
	}
}
