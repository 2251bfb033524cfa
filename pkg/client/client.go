package client

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
)

// APIError is the single error type surfaced by the client. Transport
// failures with an envelope body and logical failures signalled inside a
// 2xx response both end up here, carrying the backend's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		session: session,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      *string         `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	// JSON content-type only on write methods
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	return c.unwrap(resp, out)
}

// unwrap applies the envelope rules: on a non-2xx transport result use the
// envelope message when one can be parsed, otherwise a generic status
// message; on a 2xx result still check the envelope's statusCode, since the
// backend may signal a logical failure inside a successful transport
// response. Both paths produce the same *APIError type.
func (c *Client) unwrap(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP error: status %d", resp.StatusCode)
		if parseErr == nil && env.Message != "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if parseErr != nil {
		return fmt.Errorf("decode response: %w", parseErr)
	}

	if env.StatusCode >= 400 {
		return &APIError{Status: env.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

type ProductQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

type ProductPage struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.Page > 0 {
		v.Set("page", fmt.Sprint(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", fmt.Sprint(q.PageSize))
	}
	return v
}

func (c *Client) Register(ctx context.Context, username, password string) (*User, error) {
	var user User
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the returned token in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return &APIError{Status: http.StatusInternalServerError, Message: "login response missing access token"}
	}
	c.session.Login(resp.AccessToken)
	return nil
}

func (c *Client) Products(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	path := "/products"
	if qs := q.values().Encode(); qs != "" {
		path += "?" + qs
	}
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Product(ctx context.Context, id uint) (*Product, error) {
	var prod Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var prod Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, in ProductUpdate) (*Product, error) {
	var prod Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// UploadImage sends the file as multipart form data. The content-type is the
// multipart boundary header, never application/json.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.unwrap(resp, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}
