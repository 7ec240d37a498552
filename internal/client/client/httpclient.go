package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gymfitness/membership/internal/common"
)

// Client is the API contract the CLI depends on.
type Client interface {
	SignUp(ctx context.Context, req SignUpRequest) (string, error)
	SignIn(ctx context.Context, email, password string) (*SignInResponse, error)
	ChangePassword(ctx context.Context, email, password string) (string, error)
	Cancel(ctx context.Context, email string) (string, error)
	Me(ctx context.Context, token string) (*Profile, error)
	Ping(ctx context.Context) error
}

type SignUpRequest struct {
	FirstName  string `json:"firstname"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BankNo     string `json:"bankno"`
	ClearingNo string `json:"clearingno"`
	Level      string `json:"level,omitempty"`
}

type SignInResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ID          string   `json:"id"`
	FirstName   string   `json:"firstname"`
	Surname     string   `json:"surname"`
	Email       string   `json:"email"`
	Levels      []string `json:"levels"`
}

type Profile struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstname"`
	Surname   string   `json:"surname"`
	Email     string   `json:"email"`
	Levels    []string `json:"levels"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is lets callers match API errors against the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusNotFound:
		return target == common.ErrUserNotFound || target == common.ErrorNotFound
	case http.StatusConflict:
		return target == common.ErrEmailAlreadyInUse || target == common.ErrorConflict
	case http.StatusForbidden:
		return target == common.ErrAccountCancelled || target == common.ErrorUnauthorized
	case http.StatusUnauthorized:
		return target == common.ErrInvalidCredentials || target == common.ErrorUnauthorized || target == ErrUnauthorized
	}
	return false
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	var resp SignInResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, email, password string) (string, error) {
	var resp messageResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/changepass", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Cancel(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/cancel", "", map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*Profile, error) {
	var resp Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.TokenType+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var m messageResponse
		if json.Unmarshal(data, &m) == nil {
			apiErr.Message = m.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
