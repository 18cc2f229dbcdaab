package apply

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/model"
	"github.com/punchcard-cli/punchcard/internal/session"
	"github.com/punchcard-cli/punchcard/internal/tracker"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandCrossProduct(t *testing.T) {
	tpl := model.NewTemplate("Office day")
	tpl.Entries = []model.TemplateEntry{
		model.NewTemplateEntry("p1", "", "standup", "09:00", "09:30", false),
		model.NewTemplateEntry("p2", "t2", "review", "10:00", "11:00", true),
	}
	dateList := []time.Time{day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)}

	items, err := Expand(tpl, dateList, time.UTC)
	require.NoError(t, err)
	assert.Len(t, items, 6, "every (date, entry) pair yields one item")
}

func TestExpandInstants(t *testing.T) {
	tpl := model.NewTemplate("Morning")
	tpl.Entries = []model.TemplateEntry{
		model.NewTemplateEntry("p1", "", "work", "09:00", "10:00", false),
	}
	dateList := []time.Time{day(2024, 1, 2), day(2024, 1, 3)}

	items, err := Expand(tpl, dateList, time.UTC)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), items[0].Request.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), items[0].Request.End)
	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), items[1].Request.Start)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), items[1].Request.End)
}

func TestExpandCarriesEntryFields(t *testing.T) {
	tpl := model.NewTemplate("Morning")
	tpl.Entries = []model.TemplateEntry{
		model.NewTemplateEntry("p1", "t1", "standup", "09:00", "09:15", true),
	}

	items, err := Expand(tpl, []time.Time{day(2024, 1, 2)}, time.UTC)
	require.NoError(t, err)
	require.Len(t, items, 1)

	req := items[0].Request
	assert.Equal(t, "p1", req.ProjectID)
	assert.Equal(t, "t1", req.TaskID)
	assert.Equal(t, "standup", req.Description)
	assert.True(t, req.Billable)
	assert.Equal(t, "standup", items[0].Description)
	assert.Equal(t, day(2024, 1, 2), items[0].Date)
}

func TestExpandInvertedIntervalPassesThrough(t *testing.T) {
	tpl := model.NewTemplate("Inverted")
	tpl.Entries = []model.TemplateEntry{
		{ID: "e1", ProjectID: "p1", StartTime: "17:00", EndTime: "09:00"},
	}

	items, err := Expand(tpl, []time.Time{day(2024, 1, 2)}, time.UTC)
	require.NoError(t, err, "inverted intervals are not normalized locally")
	require.Len(t, items, 1)
	assert.True(t, items[0].Request.End.Before(items[0].Request.Start))
}

func TestExpandZeroDuration(t *testing.T) {
	tpl := model.NewTemplate("Zero")
	tpl.Entries = []model.TemplateEntry{
		{ID: "e1", ProjectID: "p1", StartTime: "09:00", EndTime: "09:00"},
	}

	items, err := Expand(tpl, []time.Time{day(2024, 1, 2)}, time.UTC)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Request.Start.Equal(items[0].Request.End))
}

func TestExpandInvalidOffset(t *testing.T) {
	tpl := model.NewTemplate("Bad")
	tpl.Entries = []model.TemplateEntry{
		{ID: "e1", ProjectID: "p1", StartTime: "9am", EndTime: "17:00"},
	}

	_, err := Expand(tpl, []time.Time{day(2024, 1, 2)}, time.UTC)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "applyTemplate-abc", Key("abc"))
	assert.NotEqual(t, Key("a"), Key("b"), "distinct templates track independently")
}

// applyFixture wires an engine to an in-memory session and a fake remote API.
type applyFixture struct {
	engine      *Engine
	sess        *session.Session
	notifier    *captureNotifier
	mu          sync.Mutex
	createCalls []clockify.TimeEntryRequest
	entryLists  int
	failProject string
}

type captureNotifier struct {
	mu            sync.Mutex
	notifications []tracker.Notification
}

func (c *captureNotifier) Notify(n tracker.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
}

func (c *captureNotifier) last() (tracker.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notifications) == 0 {
		return tracker.Notification{}, false
	}
	return c.notifications[len(c.notifications)-1], true
}

func newApplyFixture(t *testing.T) *applyFixture {
	t.Helper()
	f := &applyFixture{notifier: &captureNotifier{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(clockify.User{ID: "u1", Name: "Test User"})
	})
	mux.HandleFunc("GET /workspaces/{ws}/user/{user}/time-entries", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.entryLists++
		f.mu.Unlock()
		json.NewEncoder(w).Encode([]clockify.TimeEntry{})
	})
	mux.HandleFunc("POST /workspaces/{ws}/time-entries", func(w http.ResponseWriter, r *http.Request) {
		var req clockify.TimeEntryRequest
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		f.createCalls = append(f.createCalls, req)
		fail := f.failProject != "" && req.ProjectID == f.failProject
		f.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "project is archived"})
			return
		}
		json.NewEncoder(w).Encode(clockify.TimeEntry{ID: "e-new"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess, err := session.New(context.Background(), session.Options{
		InMemory:        true,
		Notifier:        f.notifier,
		ClockifyOptions: []clockify.Option{clockify.WithBaseURL(srv.URL)},
	})
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })
	require.NoError(t, sess.SignIn(context.Background(), "test-key", "ws1"))

	f.sess = sess
	f.engine = NewEngine(sess)
	f.engine.Location = time.UTC
	return f
}

func (f *applyFixture) requests() []clockify.TimeEntryRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]clockify.TimeEntryRequest(nil), f.createCalls...)
}

func (f *applyFixture) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entryLists
}

func twoEntryTemplate() *model.Template {
	tpl := model.NewTemplate("Office day")
	tpl.Entries = []model.TemplateEntry{
		model.NewTemplateEntry("p1", "", "standup", "09:00", "09:30", false),
		model.NewTemplateEntry("p2", "", "review", "10:00", "11:00", true),
	}
	return tpl
}

func TestApplyIssuesFullCrossProduct(t *testing.T) {
	f := newApplyFixture(t)
	tpl := twoEntryTemplate()
	dateList := []time.Time{day(2024, 1, 2), day(2024, 1, 3)}

	before := f.listCount()
	result := f.engine.Apply(context.Background(), tpl, dateList)

	require.NotNil(t, result)
	assert.Equal(t, 4, result.Created, "2 entries x 2 dates")
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 2, result.DatesTargeted)
	assert.Len(t, f.requests(), 4)
	assert.Equal(t, before+1, f.listCount(), "exactly one refetch per application run")

	n, ok := f.notifier.last()
	require.True(t, ok)
	assert.Equal(t, "4 entries created across 2 day(s).", n.Message)
	assert.False(t, n.Failure)
}

func TestApplyPartialFailure(t *testing.T) {
	f := newApplyFixture(t)
	f.failProject = "p2"
	tpl := twoEntryTemplate()

	before := f.listCount()
	result := f.engine.Apply(context.Background(), tpl, []time.Time{day(2024, 1, 2)})

	require.NotNil(t, result)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "review", result.Failures[0].Description)
	assert.Equal(t, day(2024, 1, 2), result.Failures[0].Date)
	assert.EqualError(t, result.Failures[0].Err, "project is archived")

	// Siblings were still dispatched: no abort, no rollback, and the
	// refetch still happens exactly once.
	assert.Len(t, f.requests(), 2)
	assert.Equal(t, before+1, f.listCount())

	n, ok := f.notifier.last()
	require.True(t, ok)
	assert.Equal(t, "1 entries created across 1 day(s). 1 failed.", n.Message)
	assert.False(t, n.Failure, "partial success is not presented as failure")
}

func TestApplyAllFailed(t *testing.T) {
	f := newApplyFixture(t)
	f.failProject = "p1"
	tpl := model.NewTemplate("Doomed")
	tpl.Entries = []model.TemplateEntry{
		model.NewTemplateEntry("p1", "", "work", "09:00", "17:00", false),
	}

	result := f.engine.Apply(context.Background(), tpl, []time.Time{day(2024, 1, 2)})

	require.NotNil(t, result)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Failed)

	n, ok := f.notifier.last()
	require.True(t, ok)
	assert.True(t, n.Failure, "a fully failed run is presented as failure")
}

func TestApplyEmptyDatesIsNoOp(t *testing.T) {
	f := newApplyFixture(t)
	tpl := twoEntryTemplate()

	before := f.listCount()
	result := f.engine.Apply(context.Background(), tpl, nil)

	assert.Nil(t, result)
	assert.Empty(t, f.requests(), "no dates means no requests")
	assert.Equal(t, before, f.listCount(), "and no refetch")
	assert.False(t, f.sess.Tracker.IsLoading(Key(tpl.ID)), "and no loading state")
}

func TestApplyUnconfiguredIsNoOp(t *testing.T) {
	f := newApplyFixture(t)
	require.NoError(t, f.sess.SignOut())

	result := f.engine.Apply(context.Background(), twoEntryTemplate(), []time.Time{day(2024, 1, 2)})
	assert.Nil(t, result)
	assert.Empty(t, f.requests())
}

func TestApplyBadOffsetFailsWholeBatch(t *testing.T) {
	f := newApplyFixture(t)
	tpl := model.NewTemplate("Bad")
	tpl.Entries = []model.TemplateEntry{
		{ID: "e1", ProjectID: "p1", StartTime: "morning", EndTime: "17:00"},
		{ID: "e2", ProjectID: "p1", StartTime: "09:00", EndTime: "17:00"},
	}

	result := f.engine.Apply(context.Background(), tpl, []time.Time{day(2024, 1, 2), day(2024, 1, 3)})

	require.NotNil(t, result)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 4, result.Failed, "the whole cross product is reported failed")
	assert.Empty(t, f.requests(), "nothing is dispatched")
}

func TestApplyBoundedConcurrency(t *testing.T) {
	f := newApplyFixture(t)
	f.engine.MaxInFlight = 2

	tpl := twoEntryTemplate()
	dateList := []time.Time{
		day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4),
		day(2024, 1, 5), day(2024, 1, 6),
	}

	result := f.engine.Apply(context.Background(), tpl, dateList)

	require.NotNil(t, result)
	assert.Equal(t, 10, result.Created)
	assert.Len(t, f.requests(), 10, "the bound limits concurrency, never the total")
}
