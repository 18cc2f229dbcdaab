// Package clockify provides a thin authenticated client for the Clockify
// REST API. Every request carries the configured API key; non-2xx responses
// are normalized into APIError values. The client makes a single attempt per
// call; retry policy, if any, belongs to callers.
package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/logging"
)

// DefaultBaseURL is the production Clockify API endpoint.
const DefaultBaseURL = "https://api.clockify.me/api/v1"

// defaultTimeout bounds a single request. The underlying design is one
// attempt with no retry, but a CLI process must not hang indefinitely.
const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the remote API. Message comes from the
// response body when one is decodable and is surfaced to the user verbatim.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := stderrors.As(err, &ae)
	return ae, ok
}

// errorBody is the JSON shape of Clockify error responses.
type errorBody struct {
	Message string `json:"message"`
}

// Client is an authenticated Clockify API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Clockify client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request issues one API call and decodes the JSON response into out, if out
// is non-nil. A 204 response carries no body and leaves out untouched. The
// credential check happens before any network I/O.
func (c *Client) request(ctx context.Context, method, endpoint string, in, out any) error {
	if c.apiKey == "" {
		return errors.ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	logging.DebugLog("clockify request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clockify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil && eb.Message != "" {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding clockify response: %w", err)
	}
	return nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.request(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Projects lists the workspace's projects, hydrated.
func (c *Client) Projects(ctx context.Context, workspaceID string) ([]Project, error) {
	endpoint := fmt.Sprintf("/workspaces/%s/projects?hydrated=true", url.PathEscape(workspaceID))
	var projects []Project
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Tasks lists the tasks of one project.
func (c *Client) Tasks(ctx context.Context, workspaceID, projectID string) ([]Task, error) {
	endpoint := fmt.Sprintf("/workspaces/%s/projects/%s/tasks",
		url.PathEscape(workspaceID), url.PathEscape(projectID))
	var tasks []Task
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TimeEntries lists a user's time entries in the workspace, hydrated,
// optionally bounded by the window.
func (c *Client) TimeEntries(ctx context.Context, workspaceID, userID string, window TimeWindow) ([]TimeEntry, error) {
	query := url.Values{}
	query.Set("hydrated", "true")
	if window.Start != nil {
		query.Set("start", window.Start.UTC().Format(time.RFC3339))
	}
	if window.End != nil {
		query.Set("end", window.End.UTC().Format(time.RFC3339))
	}

	endpoint := fmt.Sprintf("/workspaces/%s/user/%s/time-entries?%s",
		url.PathEscape(workspaceID), url.PathEscape(userID), query.Encode())
	var entries []TimeEntry
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateTimeEntry creates one time entry.
func (c *Client) CreateTimeEntry(ctx context.Context, workspaceID string, req TimeEntryRequest) (*TimeEntry, error) {
	endpoint := fmt.Sprintf("/workspaces/%s/time-entries", url.PathEscape(workspaceID))
	var entry TimeEntry
	if err := c.request(ctx, http.MethodPost, endpoint, req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateTimeEntry replaces one time entry.
func (c *Client) UpdateTimeEntry(ctx context.Context, workspaceID, id string, req TimeEntryRequest) (*TimeEntry, error) {
	endpoint := fmt.Sprintf("/workspaces/%s/time-entries/%s",
		url.PathEscape(workspaceID), url.PathEscape(id))
	var entry TimeEntry
	if err := c.request(ctx, http.MethodPut, endpoint, req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimeEntry removes one time entry. The remote API answers 204.
func (c *Client) DeleteTimeEntry(ctx context.Context, workspaceID, id string) error {
	endpoint := fmt.Sprintf("/workspaces/%s/time-entries/%s",
		url.PathEscape(workspaceID), url.PathEscape(id))
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil)
}
