package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/session"
)

func newTestDashboard(t *testing.T) *DashboardModel {
	t.Helper()
	sess, err := session.New(context.Background(), session.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	m := NewDashboardModel(DashboardConfig{Session: sess})
	m.width = 100
	m.height = 40
	return m
}

func sampleEntries() []clockify.TimeEntry {
	return []clockify.TimeEntry{{
		ID:          "e1",
		Description: "standup",
		TimeInterval: clockify.TimeInterval{
			Start: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		},
	}}
}

func TestFetchedEntriesStoredOnModel(t *testing.T) {
	m := newTestDashboard(t)

	updated, _ := m.Update(fetchedMsg{entries: sampleEntries(), ok: true})
	dm := updated.(*DashboardModel)
	require.Len(t, dm.entries, 1)
	assert.Equal(t, "standup", dm.entries[0].Description)

	// A failed refresh keeps the last good list.
	updated, _ = dm.Update(fetchedMsg{})
	dm = updated.(*DashboardModel)
	assert.Len(t, dm.entries, 1)
}

func TestRenderEntriesUsesModelCopy(t *testing.T) {
	m := newTestDashboard(t)
	m.entries = sampleEntries()

	// The view renders the model's copy; a concurrent background fetch
	// rewriting the session cache must not be observable here.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.sess.TimeEntries = nil
			m.sess.TimeEntries = sampleEntries()
		}
	}()

	for i := 0; i < 100; i++ {
		assert.Contains(t, m.renderEntries(), "standup")
	}
	wg.Wait()
}

func TestRenderEntriesEmpty(t *testing.T) {
	m := newTestDashboard(t)
	assert.Contains(t, m.renderEntries(), "no entries")
}
