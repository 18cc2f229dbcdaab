// Package session holds the application runtime state for Punchcard: the
// local database, the Clockify client, the async tracker, and the
// read-through caches. One Session is constructed per CLI invocation and
// threaded explicitly; there are no ambient singletons.
package session

import (
	"context"
	"os"
	"sync"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/logging"
	"github.com/punchcard-cli/punchcard/internal/model"
	"github.com/punchcard-cli/punchcard/internal/storage"
	"github.com/punchcard-cli/punchcard/internal/tracker"
	"github.com/punchcard-cli/punchcard/internal/validate"
)

// Tracker keys for single-instance operations.
const (
	KeyUser        = "user"
	KeyProjects    = "projects"
	KeyTimeEntries = "timeEntries"
	KeyCreateEntry = "createTimeEntry"
	KeyUpdateEntry = "updateTimeEntry"
	KeyDeleteEntry = "deleteTimeEntry"
)

// TaskKey returns the tracker key for a per-project task fetch, so
// concurrent fetches for different projects do not collide.
func TaskKey(projectID string) string {
	return "tasks-" + projectID
}

// Session is the application state object.
type Session struct {
	DB      *storage.DB
	Tracker *tracker.Tracker

	CredentialsRepo *storage.CredentialsRepo
	TemplateRepo    *storage.TemplateRepo

	// Local state, loaded once at construction.
	Credentials *model.Credentials
	Templates   *model.TemplateCollection

	// Read-through caches of remote state. Never authoritative. Writes are
	// guarded by mu because background fetches (the dashboard's refresh
	// command, concurrent application runs) may land simultaneously; callers
	// that need the fresh value use the fetcher's return value rather than
	// reading the field across goroutines.
	mu          sync.Mutex
	User        *clockify.User
	Projects    []clockify.Project
	TimeEntries []clockify.TimeEntry

	client      *clockify.Client
	clientOpts  []clockify.Option
	resolveUser bool
}

// Options configures the session.
type Options struct {
	DBPath   string
	InMemory bool
	Notifier tracker.Notifier
	// ClockifyOptions are applied to every client built by the session
	// (tests point the client at a local server).
	ClockifyOptions []clockify.Option
	// SkipUserResolve suppresses the automatic current-user fetch at
	// construction time.
	SkipUserResolve bool
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{
		DBPath: storage.DefaultPath(),
	}
}

// New creates a session: opens the database, loads credentials, loads the
// template collection (running the one-shot legacy migration), and — when
// credentials are configured — resolves the current user.
func New(ctx context.Context, opts Options) (*Session, error) {
	if envPath := os.Getenv("PUNCHCARD_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		DB:              db,
		Tracker:         tracker.New(opts.Notifier),
		CredentialsRepo: storage.NewCredentialsRepo(db),
		TemplateRepo:    storage.NewTemplateRepo(db),
		clientOpts:      opts.ClockifyOptions,
		resolveUser:     !opts.SkipUserResolve,
	}

	s.Credentials, err = s.CredentialsRepo.Get()
	if err != nil {
		db.Close()
		return nil, err
	}

	s.Templates, err = s.TemplateRepo.Load()
	if err != nil {
		db.Close()
		return nil, err
	}

	if s.Credentials.Configured() {
		s.client = clockify.New(s.Credentials.APIKey, s.clientOpts...)
		if s.resolveUser {
			s.ResolveCurrentUser(ctx)
		}
	}

	return s, nil
}

// Close closes the session's database.
func (s *Session) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// Configured reports whether both credentials are present. All
// remote-dependent operations are disabled while unconfigured.
func (s *Session) Configured() bool {
	return s.Credentials != nil && s.Credentials.Configured()
}

// Client returns the Clockify client, or nil while unconfigured.
func (s *Session) Client() *clockify.Client {
	return s.client
}

// Notify emits a user-visible notification through the tracker's notifier.
func (s *Session) Notify(title, message string) {
	s.Tracker.Notifier().Notify(tracker.Notification{
		Title:   title,
		Message: message,
	})
}

// SignIn validates and persists the credential pair, rebuilds the client,
// and resolves the current user.
func (s *Session) SignIn(ctx context.Context, apiKey, workspaceID string) error {
	if err := validate.Credentials(apiKey, workspaceID); err != nil {
		return err
	}
	if err := s.CredentialsRepo.Save(apiKey, workspaceID); err != nil {
		return err
	}

	s.Credentials = model.NewCredentials(apiKey, workspaceID)
	s.client = clockify.New(apiKey, s.clientOpts...)
	logging.Info("signed in", "workspace_id", workspaceID, "api_key", apiKey)

	if s.resolveUser {
		s.ResolveCurrentUser(ctx)
	}
	return nil
}

// SignOut clears the persisted credentials and all cached remote state.
// Templates are local property and survive sign-out.
func (s *Session) SignOut() error {
	if err := s.CredentialsRepo.Clear(); err != nil {
		return err
	}
	s.Credentials = &model.Credentials{Key: model.KeyCredentials}
	s.client = nil
	s.mu.Lock()
	s.User = nil
	s.Projects = nil
	s.TimeEntries = nil
	s.mu.Unlock()
	return nil
}

// ResolveCurrentUser fetches the authenticated user, tracked under "user".
// Failure is swallowed and reported by the tracker; the previous value is
// kept.
func (s *Session) ResolveCurrentUser(ctx context.Context) bool {
	if !s.Configured() {
		return false
	}
	user, ok := tracker.Run(s.Tracker, KeyUser, func() (*clockify.User, error) {
		return s.client.CurrentUser(ctx)
	})
	if ok {
		s.mu.Lock()
		s.User = user
		s.mu.Unlock()
	}
	return ok
}

// RequireUser returns the resolved user or an error suitable for the CLI.
func (s *Session) RequireUser() (*clockify.User, error) {
	if s.User == nil {
		return nil, errors.ErrUserNotResolved
	}
	return s.User, nil
}
