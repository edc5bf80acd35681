package api

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

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

// Client talks to the task REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the transport timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.Component("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks fetches every task
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask posts a new task and returns it with its server-assigned id
func (c *Client) CreateTask(ctx context.Context, task model.NewTask) (model.Task, error) {
	var created model.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", task, &created)
	return created, err
}

// UpdateTask applies a partial update and returns the stored task
func (c *Client) UpdateTask(ctx context.Context, id string, updates model.TaskUpdate) (model.Task, error) {
	var updated model.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), updates, &updated)
	return updated, err
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// ListGroups fetches every group
func (c *Client) ListGroups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a group with the given name
func (c *Client) CreateGroup(ctx context.Context, name string) (model.Group, error) {
	var created model.Group
	err := c.do(ctx, http.MethodPost, "/api/groups", map[string]string{"name": name}, &created)
	return created, err
}

// ListCategories fetches every category
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category
func (c *Client) CreateCategory(ctx context.Context, name string, color model.Color) (model.Category, error) {
	body := struct {
		Name  string      `json:"name"`
		Color model.Color `json:"color"`
	}{name, color}

	var created model.Category
	err := c.do(ctx, http.MethodPost, "/api/categories", body, &created)
	return created, err
}

// UpdateCategory applies a partial update and returns the stored category
func (c *Client) UpdateCategory(ctx context.Context, id string, updates model.CategoryUpdate) (model.Category, error) {
	var updated model.Category
	err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), updates, &updated)
	return updated, err
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

// do performs one request. It never retries.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("HTTP Request", logger.F("method", method), logger.F("path", path))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("HTTP request failed", logger.F("method", method), logger.F("path", path), logger.F("error", err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("HTTP Response",
		logger.F("method", method),
		logger.F("path", path),
		logger.F("status", resp.StatusCode),
		logger.F("duration", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: errorMessage(respBody),
		}
		c.log.Warn("API error", logger.F("detail", se.Detail()))
		return se
	}

	if result == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} or {"message": "..."} from a failure body
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
