// Package client is the typed HTTP client for the BookBazaar API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bookbazaar/bookbazaar/model"
	"github.com/pkg/errors"
)

// Sentinel errors mapped from the API error codes.
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidImage       = errors.New("invalid cover image")
)

// APIError is a non-2xx response carrying a machine readable code.
type APIError struct {
	StatusCode int
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Code)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	req := model.RegisterRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/register", req, nil)
}

// Login authenticates and returns the session user. A response without a
// user payload counts as a failed login.
func (c *Client) Login(ctx context.Context, email, password string) (*model.SessionUser, error) {
	req := model.LoginRequest{Email: email, Password: password}
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, ErrInvalidCredentials
	}
	if resp.User.Token == "" {
		resp.User.Token = resp.Token
	}
	c.token = resp.User.Token
	return resp.User, nil
}

// ListBooks fetches the published catalog.
func (c *Client) ListBooks(ctx context.Context) ([]*model.Book, error) {
	var resp model.BookListResponse
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// UploadBook submits a book for review and returns its review status.
func (c *Client) UploadBook(ctx context.Context, upload *model.BookUploadRequest) (string, error) {
	var resp model.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/books", upload, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *Client) ListPending(ctx context.Context, adminEmail string) ([]*model.Book, error) {
	path := "/api/pending?admin_email=" + url.QueryEscape(adminEmail)
	var resp model.BookListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (c *Client) ApproveBook(ctx context.Context, uid, adminEmail string) error {
	path := fmt.Sprintf("/api/books/%s/approve", url.PathEscape(uid))
	req := map[string]string{"admin_email": adminEmail}
	return c.do(ctx, http.MethodPost, path, req, nil)
}

func (c *Client) RejectBook(ctx context.Context, uid, adminEmail string) error {
	path := fmt.Sprintf("/api/books/%s?admin_email=%s", url.PathEscape(uid), url.QueryEscape(adminEmail))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "failed to decode response")
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &payload)

	apiErr := &APIError{StatusCode: resp.StatusCode, Code: payload.Error}
	switch payload.Error {
	case "email_exists":
		return ErrEmailExists
	case "invalid_credentials":
		return ErrInvalidCredentials
	case "forbidden":
		return ErrForbidden
	case "not_found":
		return ErrNotFound
	case "invalid_image":
		return ErrInvalidImage
	}
	return apiErr
}
