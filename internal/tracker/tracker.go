// Package tracker provides a keyed in-flight/error registry for asynchronous
// operations, so callers can observe per-operation loading and error state
// without global blocking.
package tracker

import (
	"sort"
	"sync"

	"github.com/punchcard-cli/punchcard/internal/logging"
)

// Notification is a one-shot user-visible message.
type Notification struct {
	Title   string
	Message string
	Failure bool
}

// Notifier delivers notifications to the user. The CLI prints them through
// the output formatter; tests capture them.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Notification) {}

// Tracker records per-key loading and error state. Keys are caller-chosen
// strings; runs under different keys proceed fully independently. Runs
// sharing a key are NOT mutually exclusive: a second run stomps the
// bookkeeping of the first. That is the documented contract, not a bug —
// callers wanting stricter semantics must serialize externally.
type Tracker struct {
	mu       sync.RWMutex
	loading  map[string]bool
	errs     map[string]error
	notifier Notifier
}

// New creates a tracker delivering failure notifications to the notifier.
func New(notifier Notifier) *Tracker {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Tracker{
		loading:  make(map[string]bool),
		errs:     make(map[string]error),
		notifier: notifier,
	}
}

// Notifier returns the tracker's notifier so other components can emit
// success notifications through the same channel.
func (t *Tracker) Notifier() Notifier {
	return t.notifier
}

func (t *Tracker) begin(key string) {
	t.mu.Lock()
	t.loading[key] = true
	delete(t.errs, key)
	t.mu.Unlock()
}

func (t *Tracker) finish(key string, err error) {
	t.mu.Lock()
	delete(t.loading, key)
	if err != nil {
		t.errs[key] = err
	}
	t.mu.Unlock()

	if err != nil {
		logging.Warn("operation failed", "key", key, "error", err)
		t.notifier.Notify(Notification{
			Title:   "An error occurred",
			Message: err.Error(),
			Failure: true,
		})
	}
}

// Run executes fn under the given key. The key is marked loading before the
// call and cleared on every exit path. On failure the error is recorded
// under the key, a notification is emitted, and the zero value plus false is
// returned instead of propagating — callers must branch on ok. This is a
// deliberate swallow-and-report policy.
func Run[T any](t *Tracker, key string, fn func() (T, error)) (T, bool) {
	t.begin(key)
	result, err := fn()
	t.finish(key, err)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

// Do executes a result-less operation under the given key with Run
// semantics.
func Do(t *Tracker, key string, fn func() error) bool {
	_, ok := Run(t, key, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return ok
}

// IsLoading reports whether an operation under the key is in flight.
func (t *Tracker) IsLoading(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading[key]
}

// LastError returns the error recorded for the key, if any.
func (t *Tracker) LastError(key string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errs[key]
}

// ClearError removes the recorded error for the key.
func (t *Tracker) ClearError(key string) {
	t.mu.Lock()
	delete(t.errs, key)
	t.mu.Unlock()
}

// ErrorKeys returns the keys with a recorded error, sorted.
func (t *Tracker) ErrorKeys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.errs))
	for k := range t.errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
