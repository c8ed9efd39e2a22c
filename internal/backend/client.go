// Package backend реализует HTTP-клиент к REST API Celestial Central.
//
// Все запросы витрины к backend проходят через единую точку doJSON:
// она выставляет заголовки, разбирает JSON-ответы и приводит неуспешные
// статусы к единому формату ошибки "Error: <status> - <body>".
// Бинарные ответы (загрузка товара) минуют JSON-обработку.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/celestialcentral/storefront/internal/lib/sl"
)

// Client инкапсулирует базовый URL backend и HTTP-транспорт.
// Повторов и клиентских таймаутов нет: каждая ошибка сразу
// возвращается вызывающему, таймауты определяет транспорт.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New создаёт клиент backend. Завершающий слэш базового URL обрезается.
func New(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// RequestError описывает неуспешный HTTP-ответ backend:
// числовой статус и сырой текст тела ответа.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Error: %d - %s", e.Status, e.Body)
}

// IsUnauthorized сообщает, является ли ошибка ответом 401.
// Основная проверка — типизированная; подстрочный поиск "401" оставлен
// для ошибок, успевших пройти через границу форматирования.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status == http.StatusUnauthorized
	}
	return strings.Contains(err.Error(), "401")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doJSON выполняет запрос и разбирает ответ в out, если backend объявил
// JSON в Content-Type. Ответы с другим типом содержимого не разбираются:
// для них out остаётся нетронутым.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	const op = "backend.doJSON"

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("request failed", sl.Op(op), slog.String("path", path), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText, _ := io.ReadAll(resp.Body)
		c.log.Error("server returned error",
			sl.Op(op), slog.String("path", path), slog.Int("status", resp.StatusCode))
		return &RequestError{Status: resp.StatusCode, Body: string(errText)}
	}

	contentType := resp.Header.Get("Content-Type")
	if out != nil && strings.Contains(contentType, "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// doRaw выполняет запрос и возвращает тело ответа как есть вместе с
// объявленным Content-Type. Используется для бинарных ответов.
func (c *Client) doRaw(ctx context.Context, method, path string) ([]byte, string, error) {
	const op = "backend.doRaw"

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText, _ := io.ReadAll(resp.Body)
		return nil, "", &RequestError{Status: resp.StatusCode, Body: string(errText)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
