// Package api is the HTTP client used by the command-line tool.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dkovalev/bazaar/pkg/api"
)

// Client talks to a bazaar server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// ErrStatus is returned for non-2xx responses so callers can branch on the
// HTTP status code.
type ErrStatus struct {
	StatusCode int
	Message    string
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListQuery holds the shared pagination/search parameters.
type ListQuery struct {
	Search string
	Skip   int
	Limit  int
}

func (q ListQuery) encode() string {
	values := url.Values{}
	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates and returns the bearer token.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// ListUsers lists users (requires authentication).
func (c *Client) ListUsers(ctx context.Context, query ListQuery) ([]api.UserResponse, error) {
	var resp []api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/users/"+query.encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}
	return resp, nil
}

// GetUser returns a user with their items (requires authentication).
func (c *Client) GetUser(ctx context.Context, userID string) (*api.UserWithItemsResponse, error) {
	var resp api.UserWithItemsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get user request failed: %w", err)
	}
	return &resp, nil
}

// ListItems lists items (public).
func (c *Client) ListItems(ctx context.Context, query ListQuery) ([]api.ItemResponse, error) {
	var resp []api.ItemResponse
	if err := c.doRequest(ctx, http.MethodGet, "/items/"+query.encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list items request failed: %w", err)
	}
	return resp, nil
}

// GetItem returns an item with its owner (public).
func (c *Client) GetItem(ctx context.Context, itemID string) (*api.ItemWithOwnerResponse, error) {
	var resp api.ItemWithOwnerResponse
	if err := c.doRequest(ctx, http.MethodGet, "/items/"+url.PathEscape(itemID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &resp, nil
}

// CreateItem creates an item owned by the current account.
func (c *Client) CreateItem(ctx context.Context, req api.CreateItemRequest) (*api.ItemResponse, error) {
	var resp api.ItemResponse
	if err := c.doRequest(ctx, http.MethodPost, "/items/", req, &resp); err != nil {
		return nil, fmt.Errorf("create item request failed: %w", err)
	}
	return &resp, nil
}

// MyItems lists the current account's items.
func (c *Client) MyItems(ctx context.Context, query ListQuery) ([]api.ItemResponse, error) {
	var resp []api.ItemResponse
	if err := c.doRequest(ctx, http.MethodGet, "/my-items/"+query.encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("my items request failed: %w", err)
	}
	return resp, nil
}

// UpdateItem updates an owned item.
func (c *Client) UpdateItem(ctx context.Context, itemID string, req api.UpdateItemRequest) (*api.ItemResponse, error) {
	var resp api.ItemResponse
	if err := c.doRequest(ctx, http.MethodPut, "/items/"+url.PathEscape(itemID), req, &resp); err != nil {
		return nil, fmt.Errorf("update item request failed: %w", err)
	}
	return &resp, nil
}

// DeleteItem deletes an owned item.
func (c *Client) DeleteItem(ctx context.Context, itemID string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/items/"+url.PathEscape(itemID), nil, &resp); err != nil {
		return nil, fmt.Errorf("delete item request failed: %w", err)
	}
	return &resp, nil
}

// Stats returns the public counters.
func (c *Client) Stats(ctx context.Context) (*api.StatsResponse, error) {
	var resp api.StatsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	return &resp, nil
}

// MyStats returns the current account's counters.
func (c *Client) MyStats(ctx context.Context) (*api.MyStatsResponse, error) {
	var resp api.MyStatsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/my-stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("my stats request failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &ErrStatus{StatusCode: resp.StatusCode, Message: errResp.Message}
		}
		return &ErrStatus{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
