package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client - HTTP клиент сервера напитков
// Все запросы идут с заголовком X-Client-Id: по нему сервер привязывает
// клиента к филиалу при назначении через /connect
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент для сервера по указанному базовому адресу
// Идентификатор клиента генерируется один раз на сессию
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: uuid.NewString(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ClientID возвращает идентификатор клиента для этой сессии
func (c *Client) ClientID() string {
	return c.clientID
}

// Error представляет ответ сервера с кодом вне 2xx
// Message - текст из тела ответа, показывается пользователю как есть
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// errorBody - форма тела ошибки, которую отдаёт сервер
type errorBody struct {
	Message string `json:"message"`
}

// doJSON выполняет запрос и декодирует JSON ответ в out
// body != nil сериализуется в JSON; token != "" добавляется как Bearer
// Не-2xx ответы превращаются в *Error с текстом сервера
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	respBody, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// doText выполняет запрос и возвращает тело ответа как текст
// Используется для /admin/login и /admin/register - сервер отвечает
// простой строкой, а не JSON
func (c *Client) doText(ctx context.Context, method, path, token string, body any) (string, error) {
	respBody, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(respBody)), nil
}

// do выполняет HTTP запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Client-Id", c.clientID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("server returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, newError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// newError строит *Error из не-2xx ответа
// Сервер обычно отвечает {"message": "..."}, но часть админских ручек
// отдаёт простой текст
func newError(statusCode int, body []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return &Error{StatusCode: statusCode, Message: eb.Message}
	}
	return &Error{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
}

// CloseIdleConnections закрывает простаивающие соединения при завершении сессии
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
