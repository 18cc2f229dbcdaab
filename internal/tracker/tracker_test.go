package tracker

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureNotifier records every notification for assertions.
type captureNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func (c *captureNotifier) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
}

func (c *captureNotifier) all() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.notifications...)
}

func TestRunSuccess(t *testing.T) {
	notifier := &captureNotifier{}
	tr := New(notifier)

	result, ok := Run(tr, "fetch", func() (int, error) {
		assert.True(t, tr.IsLoading("fetch"), "key is loading while fn runs")
		return 42, nil
	})

	assert.True(t, ok)
	assert.Equal(t, 42, result)
	assert.False(t, tr.IsLoading("fetch"), "loading is cleared after fn returns")
	assert.NoError(t, tr.LastError("fetch"))
	assert.Empty(t, notifier.all(), "success emits no notification")
}

func TestRunFailure(t *testing.T) {
	notifier := &captureNotifier{}
	tr := New(notifier)
	boom := errors.New("remote unavailable")

	result, ok := Run(tr, "fetch", func() (int, error) {
		return 7, boom
	})

	assert.False(t, ok, "failure is reported via ok, not propagated")
	assert.Equal(t, 0, result, "zero value on failure")
	assert.False(t, tr.IsLoading("fetch"), "loading is cleared on the failure path too")
	assert.Equal(t, boom, tr.LastError("fetch"))

	ns := notifier.all()
	require.Len(t, ns, 1)
	assert.True(t, ns[0].Failure)
	assert.Equal(t, "remote unavailable", ns[0].Message)
}

func TestRunClearsPreviousError(t *testing.T) {
	tr := New(nil)

	Run(tr, "fetch", func() (int, error) { return 0, errors.New("first") })
	require.Error(t, tr.LastError("fetch"))

	Run(tr, "fetch", func() (int, error) {
		// The prior error is cleared as soon as a new run begins.
		assert.NoError(t, tr.LastError("fetch"))
		return 1, nil
	})
	assert.NoError(t, tr.LastError("fetch"))
}

func TestIndependentKeys(t *testing.T) {
	tr := New(nil)

	Run(tr, "a", func() (int, error) { return 0, errors.New("a failed") })
	_, ok := Run(tr, "b", func() (int, error) { return 1, nil })

	assert.True(t, ok)
	assert.Error(t, tr.LastError("a"))
	assert.NoError(t, tr.LastError("b"))
	assert.Equal(t, []string{"a"}, tr.ErrorKeys())
}

func TestDo(t *testing.T) {
	tr := New(nil)

	assert.True(t, Do(tr, "op", func() error { return nil }))
	assert.False(t, Do(tr, "op", func() error { return errors.New("nope") }))
	assert.Error(t, tr.LastError("op"))

	tr.ClearError("op")
	assert.NoError(t, tr.LastError("op"))
}

func TestConcurrentRuns(t *testing.T) {
	tr := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := "even"
			if n%2 == 1 {
				key = "odd"
			}
			Run(tr, key, func() (int, error) { return n, nil })
		}(i)
	}
	wg.Wait()

	assert.False(t, tr.IsLoading("even"))
	assert.False(t, tr.IsLoading("odd"))
	assert.Empty(t, tr.ErrorKeys())
}
