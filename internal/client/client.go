// Package client is a typed client for the users REST API.
package client

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
)

const usersPath = "/api/users"

// ErrEmptyStoreID is returned before any request is made with an empty id.
var ErrEmptyStoreID = errors.New("store id is empty")

// Envelope is the body of every API response. Data is kept raw so label
// values and numbers survive untouched.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// StoreID returns the _id of a single record in Data, if any.
func (e *Envelope) StoreID() string {
	var doc struct {
		StoreID string `json:"_id"`
	}
	if json.Unmarshal(e.Data, &doc) != nil {
		return ""
	}
	return doc.StoreID
}

// StatusError reports a non-2xx answer.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Message)
}

// Client calls one API instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends the token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, usersPath, nil)
}

// Get returns the envelope as is; an absent record is Success false
// without an error.
func (c *Client) Get(ctx context.Context, storeID string) (*Envelope, error) {
	path, err := itemPath(storeID)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Create(ctx context.Context, doc any) (*Envelope, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return c.do(ctx, http.MethodPost, usersPath, body)
}

func (c *Client) Update(ctx context.Context, storeID string, doc any) (*Envelope, error) {
	path, err := itemPath(storeID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, storeID string) (*Envelope, error) {
	path, err := itemPath(storeID)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, path, nil)
}

func itemPath(storeID string) (string, error) {
	if storeID == "" {
		return "", ErrEmptyStoreID
	}
	return usersPath + "/" + url.PathEscape(storeID), nil
}

// do returns the decoded envelope together with a *StatusError for any
// non-2xx status.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode/100 != 2 {
		return &env, &StatusError{Status: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}
