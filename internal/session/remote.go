package session

import (
	"context"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/tracker"
)

// FetchProjects retrieves the workspace's projects and replaces the cached
// list. On failure the previous cache is left intact and false is returned.
// No-op while unconfigured.
func (s *Session) FetchProjects(ctx context.Context) ([]clockify.Project, bool) {
	if !s.Configured() {
		return nil, false
	}
	projects, ok := tracker.Run(s.Tracker, KeyProjects, func() ([]clockify.Project, error) {
		return s.client.Projects(ctx, s.Credentials.WorkspaceID)
	})
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.Projects = projects
	s.mu.Unlock()
	return projects, true
}

// FetchTasks retrieves the tasks of one project. Keyed per project so
// concurrent fetches for different projects proceed independently. The
// result is not cached here; callers cache per project as needed.
func (s *Session) FetchTasks(ctx context.Context, projectID string) ([]clockify.Task, bool) {
	if !s.Configured() {
		return nil, false
	}
	return tracker.Run(s.Tracker, TaskKey(projectID), func() ([]clockify.Task, error) {
		return s.client.Tasks(ctx, s.Credentials.WorkspaceID, projectID)
	})
}

// FetchTimeEntries retrieves the authenticated user's time entries in the
// optional window and replaces the cached list wholesale, returning the
// fresh list. Callers on other goroutines must use the return value; the
// cached field is only safe to read on the goroutine that fetched it.
// Requires a resolved current user.
func (s *Session) FetchTimeEntries(ctx context.Context, window clockify.TimeWindow) ([]clockify.TimeEntry, bool) {
	if !s.Configured() || s.User == nil {
		return nil, false
	}
	entries, ok := tracker.Run(s.Tracker, KeyTimeEntries, func() ([]clockify.TimeEntry, error) {
		return s.client.TimeEntries(ctx, s.Credentials.WorkspaceID, s.User.ID, window)
	})
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.TimeEntries = entries
	s.mu.Unlock()
	return entries, true
}

// CreateTimeEntry creates one time entry, notifies on success, and
// unconditionally refreshes the cached entry list. No optimistic local
// mutation: correctness favors re-fetch over client-side derivation.
func (s *Session) CreateTimeEntry(ctx context.Context, req clockify.TimeEntryRequest) (*clockify.TimeEntry, bool) {
	if !s.Configured() {
		return nil, false
	}
	entry, ok := tracker.Run(s.Tracker, KeyCreateEntry, func() (*clockify.TimeEntry, error) {
		return s.client.CreateTimeEntry(ctx, s.Credentials.WorkspaceID, req)
	})
	if !ok {
		return nil, false
	}
	s.Notify("Success", "Time entry created.")
	s.FetchTimeEntries(ctx, clockify.TimeWindow{})
	return entry, true
}

// UpdateTimeEntry replaces one time entry, notifies on success, and
// refreshes the cached entry list.
func (s *Session) UpdateTimeEntry(ctx context.Context, id string, req clockify.TimeEntryRequest) (*clockify.TimeEntry, bool) {
	if !s.Configured() {
		return nil, false
	}
	entry, ok := tracker.Run(s.Tracker, KeyUpdateEntry, func() (*clockify.TimeEntry, error) {
		return s.client.UpdateTimeEntry(ctx, s.Credentials.WorkspaceID, id, req)
	})
	if !ok {
		return nil, false
	}
	s.Notify("Success", "Time entry updated.")
	s.FetchTimeEntries(ctx, clockify.TimeWindow{})
	return entry, true
}

// DeleteTimeEntry removes one time entry. The boolean result lets callers
// branch (a confirmation dialog closes only on success).
func (s *Session) DeleteTimeEntry(ctx context.Context, id string) bool {
	if !s.Configured() {
		return false
	}
	ok := tracker.Do(s.Tracker, KeyDeleteEntry, func() error {
		return s.client.DeleteTimeEntry(ctx, s.Credentials.WorkspaceID, id)
	})
	if !ok {
		return false
	}
	s.Notify("Success", "Time entry deleted.")
	s.FetchTimeEntries(ctx, clockify.TimeWindow{})
	return true
}
