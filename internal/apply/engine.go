package apply

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/logging"
	"github.com/punchcard-cli/punchcard/internal/model"
	"github.com/punchcard-cli/punchcard/internal/output"
	"github.com/punchcard-cli/punchcard/internal/session"
	"github.com/punchcard-cli/punchcard/internal/tracker"
)

// DefaultMaxInFlight bounds simultaneous create requests. The fan-out is
// otherwise unbounded by design; the cap protects the remote API without
// changing the aggregate-outcome contract.
const DefaultMaxInFlight = 8

// Key returns the tracker key for applying one template, so concurrent
// applications of different templates proceed independently. Re-applying the
// same template before the prior run completes shares the key and stomps its
// bookkeeping (see the tracker package contract).
func Key(templateID string) string {
	return "applyTemplate-" + templateID
}

// Failure identifies one (entry, date) pair whose creation failed.
type Failure struct {
	Description string
	Date        time.Time
	Err         error
}

// Result is the aggregate outcome of one application run. Partial success is
// kept: failures are tallied, never rolled back.
type Result struct {
	Created       int
	Failed        int
	DatesTargeted int
	Failures      []Failure
}

// Engine expands templates across dates and dispatches the resulting create
// requests concurrently.
type Engine struct {
	Session     *session.Session
	MaxInFlight int
	Location    *time.Location
}

// NewEngine creates an engine over the session with default bounds.
func NewEngine(s *session.Session) *Engine {
	return &Engine{
		Session:     s,
		MaxInFlight: DefaultMaxInFlight,
		Location:    time.Local,
	}
}

// Apply stamps the template onto every date: it expands the dates × entries
// cross product, issues all create requests concurrently, waits for every
// outcome, emits one aggregate notification, and triggers exactly one
// time-entry refresh. A failing request is counted and logged but never
// aborts its siblings; there is no rollback and no cancellation path once
// dispatch begins. Returns nil when unconfigured or when dates is empty
// (no requests, no loading state).
func (e *Engine) Apply(ctx context.Context, t *model.Template, dateList []time.Time) *Result {
	if !e.Session.Configured() || len(dateList) == 0 {
		return nil
	}

	result, _ := tracker.Run(e.Session.Tracker, Key(t.ID), func() (*Result, error) {
		return e.run(ctx, t, dateList), nil
	})

	e.notify(result, t)
	e.Session.FetchTimeEntries(ctx, clockify.TimeWindow{})
	return result
}

func (e *Engine) run(ctx context.Context, t *model.Template, dateList []time.Time) *Result {
	result := &Result{DatesTargeted: len(dateList)}

	items, err := Expand(t, dateList, e.Location)
	if err != nil {
		// Malformed offsets are caught before any network call; the whole
		// batch is reported as failed without being dispatched.
		result.Failed = len(dateList) * len(t.Entries)
		result.Failures = append(result.Failures, Failure{Err: err})
		logging.Warn("template expansion failed", "template", t.Name, "error", err)
		return result
	}

	maxInFlight := e.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}

	// Dispatch every item concurrently, bounded by the semaphore, collecting
	// outcomes into a pre-sized slice so no locking is needed.
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxInFlight)
	outcomes := make([]error, len(items))

	workspaceID := e.Session.Credentials.WorkspaceID
	client := e.Session.Client()

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it Item) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			_, err := client.CreateTimeEntry(ctx, workspaceID, it.Request)
			outcomes[idx] = err
		}(i, item)
	}
	wg.Wait()

	for i, err := range outcomes {
		if err == nil {
			result.Created++
			continue
		}
		result.Failed++
		result.Failures = append(result.Failures, Failure{
			Description: items[i].Description,
			Date:        items[i].Date,
			Err:         err,
		})
		logging.Warn("failed to create entry",
			"description", items[i].Description,
			"date", output.FormatDate(items[i].Date),
			"error", err)
	}

	return result
}

// notify emits the single aggregate notification: created count, targeted
// dates, and the failure count when non-zero.
func (e *Engine) notify(result *Result, t *model.Template) {
	if result == nil {
		return
	}
	message := fmt.Sprintf("%d entries created across %d day(s).", result.Created, result.DatesTargeted)
	if result.Failed > 0 {
		message = fmt.Sprintf("%s %d failed.", message, result.Failed)
	}
	e.Session.Tracker.Notifier().Notify(tracker.Notification{
		Title:   "Template Applied",
		Message: message,
		Failure: result.Failed > 0 && result.Created == 0,
	})
	logging.Info("template applied",
		"template", t.Name,
		"created", result.Created,
		"failed", result.Failed,
		"dates", result.DatesTargeted)
}
