package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/iudanet/mediafeed/pkg/api"
)

const (
	authPrefix  = "/api/v1/auth"
	mediaPrefix = "/api/v1/media"

	// RequestIDHeader передается в каждом запросе для корреляции логов клиента и сервера
	RequestIDHeader = "X-Request-ID"
)

// Client представляет HTTP клиент для взаимодействия с identity и media API
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
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

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendEmailVerification запрашивает одноразовый код на email
func (c *Client) SendEmailVerification(ctx context.Context, req api.VerifyEmailRequest) (*api.VerificationTicket, error) {
	var resp api.VerificationTicket
	err := c.doRequest(ctx, call{
		method: http.MethodPost,
		path:   authPrefix + "/emails/verify",
		body:   req,
		result: &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("email verification request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует пользователя по коду из письма.
// Успехом считается только 201 Created.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, call{
		method: http.MethodPost,
		path:   authPrefix + "/register",
		body:   req,
		result: &resp,
		expect: http.StatusCreated,
	})
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя.
// Успехом считается только 200 OK.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, call{
		method: http.MethodPost,
		path:   authPrefix + "/login",
		body:   req,
		result: &resp,
		expect: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// RefreshToken обменивает refresh token на новый access token
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, call{
		method: http.MethodPost,
		path:   authPrefix + "/tokens/refresh",
		token:  bearer(refreshToken),
		result: &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout завершает сессию на сервере
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	err := c.doRequest(ctx, call{
		method: http.MethodPost,
		path:   authPrefix + "/logout",
		token:  bearer(accessToken),
		expect: http.StatusOK,
	})
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// GetMediaPage загружает страницу ленты. Токен берется из source перед каждым запросом.
func (c *Client) GetMediaPage(ctx context.Context, source oauth2.TokenSource, page int) (*api.MediaPage, error) {
	token, err := source.Token()
	if err != nil {
		// Ошибки источника токена (например, истекшая сессия) пробрасываются как есть
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	var resp api.MediaPageResponse
	err = c.doRequest(ctx, call{
		method: http.MethodGet,
		path:   mediaPrefix + "/" + strconv.Itoa(page),
		token:  token,
		result: &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("media request failed: %w", err)
	}
	return &resp.Data, nil
}

func bearer(token string) *oauth2.Token {
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
}

// call описывает один запрос к API
type call struct {
	body   any
	result any
	token  *oauth2.Token
	method string
	path   string
	expect int // 0 - любой 2xx
}

// doRequest выполняет HTTP запрос и сводит любой сбой к *Error
func (c *Client) doRequest(ctx context.Context, cl call) error {
	requestID := uuid.NewString()
	url := c.baseURL + cl.path

	var bodyReader io.Reader
	if cl.body != nil {
		jsonData, err := json.Marshal(cl.body)
		if err != nil {
			return &Error{Kind: ErrClient, Err: fmt.Errorf("failed to marshal request body: %w", err), RequestID: requestID}
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, url, bodyReader)
	if err != nil {
		return &Error{Kind: ErrClient, Err: fmt.Errorf("failed to create request: %w", err), RequestID: requestID}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != nil {
		cl.token.SetAuthHeader(req)
	}

	c.logger.Debug("api request", "method", cl.method, "path", cl.path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("no response received", "path", cl.path, "request_id", requestID, "error", err)
		return &Error{Kind: ErrNetwork, Err: err, RequestID: requestID}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: ErrNetwork, Err: fmt.Errorf("failed to read response body: %w", err), RequestID: requestID}
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		message := ""
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			message = errResp.ErrorMessage()
		}
		c.logger.Debug("api error response",
			"path", cl.path, "status", resp.StatusCode, "message", message, "request_id", requestID)
		return statusError(resp.StatusCode, message, requestID)
	}

	if cl.expect != 0 && resp.StatusCode != cl.expect {
		return &Error{
			Kind:      ErrUnexpected,
			Status:    resp.StatusCode,
			Message:   fmt.Sprintf("expected status %d", cl.expect),
			RequestID: requestID,
		}
	}

	// Декодируем успешный ответ
	if cl.result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, cl.result); err != nil {
			return &Error{Kind: ErrUnexpected, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err), RequestID: requestID}
		}
	}

	return nil
}
