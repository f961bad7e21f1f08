package auth

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
)

// ErrInvalidCredentials is returned when the provider rejects a login.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// ProviderError carries a non-credential failure reported by the provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("auth provider returned %d: %s", e.Status, e.Message)
}

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client talks to the hosted auth (GoTrue) API of a Supabase project.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(supabaseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(supabaseURL, "/") + "/auth/v1",
		apiKey:  anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/token?grant_type=password", credentials{email, password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SignUp registers a new user. When e-mail confirmation is enabled the
// provider answers with the user only and AccessToken is empty.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/signup", credentials{email, password}, &raw); err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding signup response: %w", err)
	}
	if s.AccessToken == "" && s.User.ID == "" {
		if err := json.Unmarshal(raw, &s.User); err != nil {
			return nil, fmt.Errorf("decoding signup user: %w", err)
		}
	}
	return &s, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling auth provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading auth response: %w", err)
	}
	if resp.StatusCode >= 300 {
		msg := providerMessage(data)
		if resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "invalid login credentials") {
			return ErrInvalidCredentials
		}
		return &ProviderError{Status: resp.StatusCode, Message: msg}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding auth response: %w", err)
	}
	return nil
}

// providerMessage picks the first human-readable field out of an error body.
func providerMessage(data []byte) string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(data))
}
