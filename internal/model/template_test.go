package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	tpl := NewTemplate("Office day")
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "Office day", tpl.Name)
	assert.NotNil(t, tpl.Entries)
	assert.Empty(t, tpl.Entries)
}

func TestNewTemplateEntry(t *testing.T) {
	e := NewTemplateEntry("p1", "t1", "standup", "09:00", "10:00", true)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "p1", e.ProjectID)
	assert.Equal(t, "t1", e.TaskID)
	assert.Equal(t, "standup", e.Description)
	assert.Equal(t, "09:00", e.StartTime)
	assert.Equal(t, "10:00", e.EndTime)
	assert.True(t, e.Billable)
}

func TestTemplateClone(t *testing.T) {
	src := NewTemplate("Office day")
	src.Entries = []TemplateEntry{
		NewTemplateEntry("p1", "", "standup", "09:00", "10:00", false),
		NewTemplateEntry("p1", "t2", "review", "10:00", "11:00", true),
	}

	copy := src.Clone("Remote day")

	assert.Equal(t, "Remote day", copy.Name)
	assert.NotEqual(t, src.ID, copy.ID)
	require.Len(t, copy.Entries, 2)

	for i := range copy.Entries {
		// Entry ids are regenerated; everything else is carried over.
		assert.NotEqual(t, src.Entries[i].ID, copy.Entries[i].ID)
		assert.Equal(t, src.Entries[i].ProjectID, copy.Entries[i].ProjectID)
		assert.Equal(t, src.Entries[i].Description, copy.Entries[i].Description)
		assert.Equal(t, src.Entries[i].StartTime, copy.Entries[i].StartTime)
		assert.Equal(t, src.Entries[i].EndTime, copy.Entries[i].EndTime)
		assert.Equal(t, src.Entries[i].Billable, copy.Entries[i].Billable)
	}

	// Deep copy: mutating the clone leaves the source untouched.
	copy.Entries[0].Description = "changed"
	assert.Equal(t, "standup", src.Entries[0].Description)
}

func TestLegacyUpgrade(t *testing.T) {
	legacy := &LegacyTemplate{
		ID:          "legacy-1",
		Name:        "Old",
		ProjectID:   "p1",
		TaskID:      "t1",
		Description: "daily work",
	}

	tpl := legacy.Upgrade()

	assert.Equal(t, "legacy-1", tpl.ID, "template id is preserved")
	assert.Equal(t, "Old", tpl.Name)
	require.Len(t, tpl.Entries, 1)

	e := tpl.Entries[0]
	assert.NotEmpty(t, e.ID, "entry id is freshly generated")
	assert.Equal(t, "p1", e.ProjectID)
	assert.Equal(t, "t1", e.TaskID)
	assert.Equal(t, "daily work", e.Description)
	assert.Equal(t, LegacyDefaultStartTime, e.StartTime)
	assert.Equal(t, LegacyDefaultEndTime, e.EndTime)
	assert.False(t, e.Billable)
}

func TestCollectionFind(t *testing.T) {
	coll := NewTemplateCollection()
	a := NewTemplate("a")
	b := NewTemplate("b")
	coll.Templates = append(coll.Templates, a, b)

	assert.Equal(t, a, coll.Find(a.ID))
	assert.Equal(t, b, coll.FindByName("b"))
	assert.Nil(t, coll.Find("missing"))
	assert.Nil(t, coll.FindByName("missing"))
}

func TestCredentialsConfigured(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		workspaceID string
		expected    bool
	}{
		{"both_present", "key", "ws", true},
		{"missing_key", "", "ws", false},
		{"missing_workspace", "key", "", false},
		{"both_missing", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCredentials(tt.apiKey, tt.workspaceID)
			assert.Equal(t, tt.expected, c.Configured())
		})
	}
}
