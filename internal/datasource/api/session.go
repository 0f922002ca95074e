// Package api is the datasource adapter for the finance REST API.
//
// A Session owns the base URL, the HTTP client and the bearer token. It is
// created explicitly from configuration and torn down with Logout; there is
// no package-level client.
package api

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
	"sync"
	"time"

	"finboard/internal/log"
	"finboard/internal/middleware/trace"
)

// ErrNotConfigured is returned when the session has no base URL.
var ErrNotConfigured = errors.New("api: base URL not configured")

const defaultTimeout = 15 * time.Second

// Config configures a Session.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api.
	BaseURL string
	// Token is an existing bearer token. Optional.
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the default client (for testing).
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Session holds the credentials used by Client.
type Session struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *log.Logger

	mu    sync.RWMutex
	token string
	user  *User
}

// User is the profile returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewSession validates cfg and returns a session ready for requests.
func NewSession(cfg Config) (*Session, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: unsupported scheme %q", u.Scheme)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: trace.NewTransport(nil, logger),
		}
	}

	return &Session{
		baseURL:    u,
		httpClient: httpClient,
		logger:     logger.WithComponent(log.ComponentAPI),
		token:      cfg.Token,
	}, nil
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the profile from the last successful login, if any.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool { return s.Token() != "" }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token and stores it in the session.
func (s *Session) Login(ctx context.Context, email, password string) error {
	var out authResponse
	if err := s.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		s.logger.WarnContext(ctx, "Login failed",
			log.NewFields().WithOperation(log.OpLogin).WithError(err).WithErrorType(log.ErrorTypeAuth).ToSlice()...)
		return fmt.Errorf("login: %w", err)
	}
	if out.Token == "" {
		return fmt.Errorf("login: %w", &APIError{StatusCode: http.StatusOK, Message: "empty token in response"})
	}

	s.mu.Lock()
	s.token = out.Token
	user := out.User
	s.user = &user
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Logged in", log.NewFields().WithOperation(log.OpLogin).ToSlice()...)
	return nil
}

// Logout forgets the token and profile. The session stays usable for
// unauthenticated requests.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.logger.Debug("Logged out", log.NewFields().WithOperation(log.OpLogout).ToSlice()...)
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"error"`
}

func (s *Session) endpoint(path string, query url.Values) string {
	u := *s.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends body as JSON and decodes the envelope's data into out (if non-nil).
func (s *Session) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpoint(path, query), rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := s.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, env)
	}
	if len(raw) > 0 && !env.Success {
		return newAPIError(resp.StatusCode, env)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
