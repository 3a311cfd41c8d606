// Package api is the typed client for the remote catalog/auth service.
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
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
)

const DefaultBaseURL = "https://dummyjson.com"

// StatusError is a non-2xx response from the collaborator, carrying the
// server-provided message when one was present in the body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a client for the given base URL. A nil httpClient gets a
// sensible default with an instrumented transport.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "catalog-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			// Client-level rejections (bad credentials, 404s) are not a
			// collaborator outage and must not open the breaker.
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
	})

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		breaker: breaker,
	}
}

// AuthResponse is the login payload: the user profile plus bearer tokens.
type AuthResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	Image        string `json:"image"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// User converts the auth payload into the profile kept on the session.
func (a *AuthResponse) User() domain.User {
	return domain.User{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Gender:    a.Gender,
		Image:     a.Image,
	}
}

// ProductsPage is one page of catalog results.
type ProductsPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// UserPatch is the best-effort profile update sent at checkout.
type UserPatch struct {
	Address *domain.Address `json:"address,omitempty"`
	Phone   string          `json:"phone,omitempty"`
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the profile for the given bearer token.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Products(ctx context.Context, limit, skip int) (*ProductsPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var page ProductsPage
	if err := c.do(ctx, http.MethodGet, "/products", q, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single catalog entry by id.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string, limit, skip int) (*ProductsPage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var page ProductsPage
	if err := c.do(ctx, http.MethodGet, "/products/search", q, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	var user domain.User
	path := fmt.Sprintf("/users/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, "", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, statusError(resp.StatusCode, data)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response failed: %w", err)
		}
	}
	return nil
}

// statusError prefers the collaborator's own message and falls back to the
// bare status code.
func statusError(code int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &StatusError{StatusCode: code, Message: payload.Message}
	}
	return &StatusError{StatusCode: code, Message: fmt.Sprintf("request failed with status %d", code)}
}
