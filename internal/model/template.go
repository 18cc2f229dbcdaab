package model

import "github.com/google/uuid"

// Default interval assigned to entries synthesized from legacy templates.
const (
	LegacyDefaultStartTime = "09:00"
	LegacyDefaultEndTime   = "17:00"
)

// TemplateEntry is one project/task/description/interval/billable tuple
// within a template. StartTime and EndTime are day-relative "HH:mm" offsets,
// not instants, so one template can be stamped onto any calendar date.
type TemplateEntry struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	TaskID      string `json:"taskId,omitempty"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Billable    bool   `json:"billable"`
}

// Template is a named, locally persisted set of day-relative time-entry
// definitions. Templates never exist on the remote API; the id is
// client-generated and unique within the collection.
type Template struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Entries []TemplateEntry `json:"entries"`
}

// NewTemplate creates an empty template with a fresh id.
func NewTemplate(name string) *Template {
	return &Template{
		ID:      uuid.NewString(),
		Name:    name,
		Entries: []TemplateEntry{},
	}
}

// NewTemplateEntry creates a template entry with a fresh id.
func NewTemplateEntry(projectID, taskID, description, startTime, endTime string, billable bool) TemplateEntry {
	return TemplateEntry{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		TaskID:      taskID,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		Billable:    billable,
	}
}

// Clone returns a deep copy of the template with a fresh template id and
// fresh entry ids. Entry ids are regenerated so a duplicated template never
// shares entry identity with its source.
func (t *Template) Clone(name string) *Template {
	entries := make([]TemplateEntry, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = e
		entries[i].ID = uuid.NewString()
	}
	return &Template{
		ID:      uuid.NewString(),
		Name:    name,
		Entries: entries,
	}
}

// Entry returns the entry with the given id, or nil.
func (t *Template) Entry(id string) *TemplateEntry {
	for i := range t.Entries {
		if t.Entries[i].ID == id {
			return &t.Entries[i]
		}
	}
	return nil
}

// LegacyTemplate is the historical single-entry template shape. It survives
// only as the source of the one-shot schema migration.
type LegacyTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProjectID   string `json:"projectId"`
	TaskID      string `json:"taskId,omitempty"`
	Description string `json:"description"`
}

// Upgrade converts a legacy template into the multi-entry shape with one
// synthesized 09:00-17:00 non-billable entry.
func (l *LegacyTemplate) Upgrade() *Template {
	return &Template{
		ID:   l.ID,
		Name: l.Name,
		Entries: []TemplateEntry{
			NewTemplateEntry(l.ProjectID, l.TaskID, l.Description,
				LegacyDefaultStartTime, LegacyDefaultEndTime, false),
		},
	}
}

// TemplateCollection is the whole template set, persisted as one JSON
// document under a single storage key.
type TemplateCollection struct {
	Key       string      `json:"key"`
	Templates []*Template `json:"templates"`
}

// SetKey sets the database key for this collection.
func (c *TemplateCollection) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for this collection.
func (c *TemplateCollection) GetKey() string {
	return c.Key
}

// NewTemplateCollection creates an empty collection.
func NewTemplateCollection() *TemplateCollection {
	return &TemplateCollection{
		Key:       KeyTemplates,
		Templates: []*Template{},
	}
}

// Find returns the template with the given id, or nil.
func (c *TemplateCollection) Find(id string) *Template {
	for _, t := range c.Templates {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindByName returns the first template with the given name, or nil.
func (c *TemplateCollection) FindByName(name string) *Template {
	for _, t := range c.Templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}
