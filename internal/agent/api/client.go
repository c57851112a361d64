// Package api содержит HTTP-клиент для взаимодействия с сервером contactbook.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET/PATCH/DELETE)
// с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - Ответ 204 No Content и пустое тело считаются успехом.
//   - Ответ не 2xx превращается в *Error: поле error из JSON-тела или res.Status.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

// DefaultTimeout - таймаут одного запроса к серверу.
const DefaultTimeout = 10 * time.Second

// Error - ошибка, которую вернул сервер.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server: %d %s", e.StatusCode, e.Message)
}

// IsStatus сообщает, что err - ответ сервера с указанным кодом.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client реализует HTTP-клиент для общения с сервером contactbook.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент для сервера по адресу baseURL.
//
// insecure отключает проверку TLS-сертификата сервера. Нужно только
// для локального сервера с самоподписанным сертификатом.
func NewClient(baseURL string, insecure bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: tr,
		},
	}
}

// do отправляет запрос и декодирует JSON-ответ в resp (если resp != nil).
func (c *Client) do(method, path string, req, resp any, authToken string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}
	if res.StatusCode == http.StatusNoContent || resp == nil {
		return nil
	}

	err = json.NewDecoder(res.Body).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readAPIError достаёт текст ошибки из {"error": "..."}.
// Если тело не JSON, берётся как есть, пустое тело заменяется на res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))

	var payload models.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = res.Status
	}
	return &Error{StatusCode: res.StatusCode, Message: msg}
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
func (c *Client) PostJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPost, path, req, resp, authToken)
}

// GetJSON выполняет GET-запрос и декодирует JSON-ответ.
func (c *Client) GetJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodGet, path, nil, resp, authToken)
}

// PatchJSON выполняет PATCH-запрос (частичное обновление).
func (c *Client) PatchJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPatch, path, req, resp, authToken)
}

// DeleteJSON выполняет DELETE-запрос. Сервер отвечает 204 без тела.
func (c *Client) DeleteJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodDelete, path, nil, resp, authToken)
}
