// Package jira is a minimal Jira Cloud REST client implementing the
// tracker collaborator consumed by the issues package.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"qaforge/internal/issues"
)

// Client is a client for the Jira Cloud REST API using basic auth with an
// email and API token.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = c
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = l
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = d
	}
}

// New creates a new Client for the given Jira instance.
func New(baseURL, email, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("jira: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		email:      email,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Connect verifies credentials against the instance and returns the
// authenticated user's display name.
func (c *Client) Connect(ctx context.Context) (string, error) {
	var user struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/rest/api/2/myself", "connect", nil, &user); err != nil {
		return "", err
	}
	return user.DisplayName, nil
}

// CreateIssue creates an issue in the given project and returns its key.
// Implements issues.Tracker.
func (c *Client) CreateIssue(ctx context.Context, projectKey string, req issues.IssueRequest) (string, error) {
	fields := issueFields{
		Project:     projectRef{Key: projectKey},
		Summary:     req.Summary,
		Description: req.Description,
		IssueType:   nameRef{Name: req.IssueType},
		Labels:      req.Labels,
	}
	if req.Priority != "" {
		fields.Priority = &nameRef{Name: req.Priority}
	}

	body, err := json.Marshal(createIssueRequest{Fields: fields})
	if err != nil {
		return "", fmt.Errorf("jira: marshal issue: %w", err)
	}

	var created createIssueResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/rest/api/2/issue", "create issue", bytes.NewReader(body), &created); err != nil {
		return "", err
	}
	return created.Key, nil
}

// Attach uploads a file from path to the given issue. Implements
// issues.Tracker.
func (c *Client) Attach(ctx context.Context, issueKey, path, filename string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("jira: open attachment: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("jira: build attachment form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("jira: read attachment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("jira: finalize attachment form: %w", err)
	}

	url := fmt.Sprintf("%s/rest/api/2/issue/%s/attachments", c.baseURL, issueKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("jira: create attachment request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "no-check")

	c.logger.InfoContext(ctx, "API request", "operation", "attach", "issue", issueKey, "filename", filename)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("attach: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError("attach", resp)
	}
	return nil
}

// doJSON executes an HTTP request with basic auth and decodes the JSON
// response into dst. Error statuses become an *APIError.
func (c *Client) doJSON(ctx context.Context, method, url, operation string, body io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.SetBasicAuth(c.email, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.InfoContext(ctx, "API request", "operation", operation, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(operation, resp)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) apiError(operation string, resp *http.Response) error {
	respBody, _ := io.ReadAll(resp.Body)
	var errRS errorResponse
	if json.Unmarshal(respBody, &errRS) == nil && len(errRS.ErrorMessages) > 0 {
		return &APIError{Operation: operation, Status: resp.StatusCode, Message: strings.Join(errRS.ErrorMessages, "; ")}
	}
	msg := string(respBody)
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{Operation: operation, Status: resp.StatusCode, Message: msg}
}
