package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/urugendo/pkg/api"
)

// DefaultTimeout — таймаут исходящих запросов по умолчанию
const DefaultTimeout = 10 * time.Second

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option настраивает клиент при создании
type Option func(*Client)

// WithTimeout задает таймаут исходящих запросов
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenSource включает авторизованный транспорт: каждый запрос несет
// Bearer access token, а 401 прозрачно обрабатывается одним refresh-retry
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.httpClient.Transport = &authTransport{
			base:       http.DefaultTransport,
			tokens:     ts,
			refreshURL: c.baseURL + "/users/auth/token/refresh/",
		}
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// Ограничиваем количество редиректов и переносим Authorization
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// doRequest выполняет HTTP запрос с JSON телом и разбирает ответ
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, result)
}

// doUpload выполняет multipart загрузку файла в поле "image"
func (c *Client) doUpload(ctx context.Context, path, filename string, file io.Reader, result interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, result)
}

// send выполняет запрос, классифицирует ошибки и декодирует результат
func (c *Client) send(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyError превращает не-2xx ответ в типизированную ошибку
func classifyError(statusCode int, body []byte) error {
	var errResp api.ErrorResponse
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Error != "":
			message = errResp.Error
		case errResp.Detail != "":
			message = errResp.Detail
		}
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = "authentication failed"
		}
		return &AuthError{Message: message, StatusCode: statusCode}
	case http.StatusNotFound:
		if message == "" {
			message = http.StatusText(statusCode)
		}
		return &NotFoundError{Message: message}
	case http.StatusBadRequest, http.StatusConflict:
		return &ValidationError{Message: message, Fields: errResp.Fields}
	}

	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &APIError{Message: message, StatusCode: statusCode}
}

// encodeQuery собирает query string из непустых параметров
func encodeQuery(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		if value != "" {
			values.Set(key, value)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
