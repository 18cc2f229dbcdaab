package model

// Credentials holds the Clockify API key and workspace identifier (singleton).
// Both values are required for any remote call; absence of either leaves the
// application unconfigured.
type Credentials struct {
	Key         string `json:"key"`
	APIKey      string `json:"api_key"`
	WorkspaceID string `json:"workspace_id"`
}

// SetKey sets the database key for these credentials.
func (c *Credentials) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for these credentials.
func (c *Credentials) GetKey() string {
	return c.Key
}

// Configured reports whether both the API key and workspace id are present.
func (c *Credentials) Configured() bool {
	return c.APIKey != "" && c.WorkspaceID != ""
}

// NewCredentials creates credentials for the given API key and workspace.
func NewCredentials(apiKey, workspaceID string) *Credentials {
	return &Credentials{
		Key:         KeyCredentials,
		APIKey:      apiKey,
		WorkspaceID: workspaceID,
	}
}
