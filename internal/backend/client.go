// Package backend предоставляет клиент внешнего API цветочного магазина.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnavailable возвращается, если внешний API недоступен или ответил нечитаемыми данными.
var ErrUnavailable = errors.New("backend unavailable")

// RejectedError описывает отказ внешнего API: статус ответа и текст ошибки от сервера.
type RejectedError struct {
	StatusCode int
	Detail     string
}

func (e *RejectedError) Error() string {
	return e.Detail
}

// IsRejected сообщает, является ли err отказом внешнего API, и возвращает его.
func IsRejected(err error) (*RejectedError, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

type tokenKey struct{}

// WithToken добавляет в контекст токен, который клиент передаст в заголовке Authorization.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client инкапсулирует HTTP-взаимодействие с внешним API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт HTTP-клиент для обращения к внешнему API по указанному адресу.
func NewClient(baseURL string) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do выполняет запрос и декодирует ответ в out, если он не nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("%w: client not configured", ErrUnavailable)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &RejectedError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	return nil
}

// readDetail извлекает текст ошибки из тела ответа вида {"detail": "..."}.
func readDetail(resp *http.Response) string {
	fallback := http.StatusText(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return fallback
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil || len(eb.Detail) == 0 {
		return fallback
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil && detail != "" {
		return detail
	}

	// Ошибки валидации приходят списком объектов с полем msg.
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
		return items[0].Msg
	}

	return fallback
}
