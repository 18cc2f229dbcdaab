package session

import (
	"github.com/google/uuid"

	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/model"
	"github.com/punchcard-cli/punchcard/internal/validate"
)

// SaveTemplate stores a template in the local collection. With isNew a fresh
// unique id is assigned and the template appended; otherwise the fields are
// merged over the existing template matching t.ID. The whole collection is
// re-persisted synchronously.
func (s *Session) SaveTemplate(t *model.Template, isNew bool) error {
	if err := validate.TemplateName(t.Name); err != nil {
		return err
	}
	for i := range t.Entries {
		if err := validate.TemplateEntry(&t.Entries[i]); err != nil {
			return err
		}
	}

	if isNew {
		t.ID = uuid.NewString()
		if t.Entries == nil {
			t.Entries = []model.TemplateEntry{}
		}
		s.Templates.Templates = append(s.Templates.Templates, t)
	} else {
		existing := s.Templates.Find(t.ID)
		if existing == nil {
			return errors.ErrTemplateNotFound
		}
		existing.Name = t.Name
		if t.Entries != nil {
			existing.Entries = t.Entries
		}
	}

	if err := s.TemplateRepo.Save(s.Templates); err != nil {
		return err
	}
	s.Notify("Success", "Template saved.")
	return nil
}

// DeleteTemplate removes the template with the given id and re-persists the
// collection. All other templates are untouched.
func (s *Session) DeleteTemplate(id string) error {
	kept := s.Templates.Templates[:0]
	found := false
	for _, t := range s.Templates.Templates {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return errors.ErrTemplateNotFound
	}
	s.Templates.Templates = kept

	if err := s.TemplateRepo.Save(s.Templates); err != nil {
		return err
	}
	s.Notify("Success", "Template deleted.")
	return nil
}

// DuplicateTemplate deep-copies an existing template under a new name.
// Entry ids are regenerated so the copy never shares entry identity with
// its source.
func (s *Session) DuplicateTemplate(id, name string) (*model.Template, error) {
	src := s.Templates.Find(id)
	if src == nil {
		return nil, errors.ErrTemplateNotFound
	}
	if name == "" {
		name = src.Name + " (copy)"
	}
	if err := validate.TemplateName(name); err != nil {
		return nil, err
	}

	copy := src.Clone(name)
	s.Templates.Templates = append(s.Templates.Templates, copy)

	if err := s.TemplateRepo.Save(s.Templates); err != nil {
		return nil, err
	}
	s.Notify("Success", "Template duplicated.")
	return copy, nil
}

// FindTemplate resolves a template by id or, failing that, by exact name.
func (s *Session) FindTemplate(ref string) (*model.Template, error) {
	if t := s.Templates.Find(ref); t != nil {
		return t, nil
	}
	if t := s.Templates.FindByName(ref); t != nil {
		return t, nil
	}
	return nil, errors.ErrTemplateNotFound
}
