package clockify

import "time"

// User is the authenticated Clockify user.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	ProfilePicture   string `json:"profilePicture"`
	ActiveWorkspace  string `json:"activeWorkspace"`
	DefaultWorkspace string `json:"defaultWorkspace"`
}

// Project is a workspace project. Read-only pass-through from the remote
// API; this application never mutates projects.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	WorkspaceID string `json:"workspaceId"`
	Billable    bool   `json:"billable"`
	Color       string `json:"color"`
	Archived    bool   `json:"archived"`
	Note        string `json:"note"`
	Public      bool   `json:"public"`
}

// Task is a sub-unit of a project. The remote API guarantees that a task's
// ProjectID matches the project it was fetched under.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
	Status    string `json:"status"`
	Billable  bool   `json:"billable"`
}

// TimeInterval is the start/end/duration triple of a time entry, with
// instants in ISO-8601.
type TimeInterval struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
}

// TimeEntry is a remote time entry. The remote API holds the authoritative
// copy; this application only caches the last-fetched list. Project and Task
// are populated in hydrated responses.
type TimeEntry struct {
	ID           string       `json:"id"`
	Description  string       `json:"description"`
	UserID       string       `json:"userId"`
	Billable     bool         `json:"billable"`
	TaskID       string       `json:"taskId,omitempty"`
	ProjectID    string       `json:"projectId,omitempty"`
	WorkspaceID  string       `json:"workspaceId"`
	TimeInterval TimeInterval `json:"timeInterval"`
	Project      *Project     `json:"project,omitempty"`
	Task         *Task        `json:"task,omitempty"`
}

// TimeEntryRequest is the create/update payload for a time entry.
type TimeEntryRequest struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Billable    bool      `json:"billable"`
	Description string    `json:"description"`
	ProjectID   string    `json:"projectId,omitempty"`
	TaskID      string    `json:"taskId,omitempty"`
}

// TimeWindow optionally bounds a time-entry listing.
type TimeWindow struct {
	Start *time.Time
	End   *time.Time
}
