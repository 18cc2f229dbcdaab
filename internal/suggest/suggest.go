// Package suggest calls an external text-generation endpoint to propose a
// time-entry description for a project/task pair. The collaborator is
// strictly optional: any failure is logged and swallowed, leaving the
// description unchanged.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/punchcard-cli/punchcard/internal/logging"
)

// EnvEndpoint names the environment variable holding the suggestion
// endpoint URL. Unset means the feature is disabled.
const EnvEndpoint = "PUNCHCARD_SUGGEST_URL"

const defaultTimeout = 15 * time.Second

type request struct {
	ProjectName string `json:"projectName"`
	TaskName    string `json:"taskName,omitempty"`
}

type response struct {
	Suggestion string `json:"suggestion"`
}

// Client calls the suggestion endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a suggestion client for the given endpoint. An empty endpoint
// disables the client.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// FromEnv creates a suggestion client from PUNCHCARD_SUGGEST_URL.
func FromEnv() *Client {
	return New(os.Getenv(EnvEndpoint))
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

// Describe returns a suggested description for the project/task pair, or ""
// when disabled or on any failure. Single attempt, no retry; errors never
// propagate.
func (c *Client) Describe(ctx context.Context, projectName, taskName string) string {
	if !c.Enabled() {
		return ""
	}

	payload, err := json.Marshal(request{ProjectName: projectName, TaskName: taskName})
	if err != nil {
		logging.Warn("suggestion request encoding failed", "error", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		logging.Warn("suggestion request creation failed", "error", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn("suggestion request failed", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Warn("suggestion request rejected", "status", resp.StatusCode)
		return ""
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logging.Warn("suggestion response decoding failed", "error", err)
		return ""
	}
	return out.Suggestion
}
