package storage

import (
	"encoding/json"

	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/logging"
	"github.com/punchcard-cli/punchcard/internal/model"
)

// TemplateRepo provides operations for the template collection. The whole
// collection lives under one key and is always replaced wholesale, so a
// partial write can never corrupt individual templates.
type TemplateRepo struct {
	db *DB
}

// NewTemplateRepo creates a new template repository.
func NewTemplateRepo(db *DB) *TemplateRepo {
	return &TemplateRepo{db: db}
}

// Load retrieves the template collection, running the one-shot legacy schema
// migration first. The migration fires only when the current-schema key is
// absent and a legacy key exists; it deletes the legacy key afterward, so a
// second Load finds nothing to convert.
func (r *TemplateRepo) Load() (*model.TemplateCollection, error) {
	coll := &model.TemplateCollection{}
	err := r.db.Get(model.KeyTemplates, coll)
	if err == nil {
		return coll, nil
	}
	if !IsErrKeyNotFound(err) {
		return nil, errors.NewSystemErrorWithOp("template load", "database read failed", err)
	}

	migrated, err := r.migrateLegacy()
	if err != nil {
		return nil, err
	}
	if migrated != nil {
		return migrated, nil
	}
	return model.NewTemplateCollection(), nil
}

// migrateLegacy converts the historical single-entry template document, if
// present, persists the converted collection under the current key, and
// deletes the legacy key. Returns nil when there is nothing to migrate.
func (r *TemplateRepo) migrateLegacy() (*model.TemplateCollection, error) {
	data, err := r.db.GetBytes(model.KeyLegacyTemplates)
	if IsErrKeyNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("template migration", "database read failed", err)
	}

	var legacy []model.LegacyTemplate
	if err := json.Unmarshal(data, &legacy); err != nil {
		// An undecodable legacy document is logged and left in place rather
		// than destroyed; the user keeps an empty current-schema collection.
		logging.Warn("failed to decode legacy templates, skipping migration", "error", err)
		return nil, nil
	}

	coll := MigrateLegacyTemplates(legacy)
	if err := r.db.Set(coll); err != nil {
		return nil, errors.NewSystemErrorWithOp("template migration", "database write failed", err)
	}
	if err := r.db.Delete(model.KeyLegacyTemplates); err != nil {
		return nil, errors.NewSystemErrorWithOp("template migration", "legacy key delete failed", err)
	}

	logging.Info("migrated legacy templates", "count", len(coll.Templates))
	return coll, nil
}

// MigrateLegacyTemplates is the pure legacy-to-current transform: each
// single-entry legacy template becomes a current-schema template with one
// synthesized 09:00-17:00 non-billable entry. Template ids are preserved;
// entry ids are freshly generated.
func MigrateLegacyTemplates(legacy []model.LegacyTemplate) *model.TemplateCollection {
	coll := model.NewTemplateCollection()
	for i := range legacy {
		coll.Templates = append(coll.Templates, legacy[i].Upgrade())
	}
	return coll
}

// Save persists the whole collection. Last write wins; there is no
// versioning beyond the one-shot migration.
func (r *TemplateRepo) Save(coll *model.TemplateCollection) error {
	coll.Key = model.KeyTemplates
	if err := r.db.Set(coll); err != nil {
		return errors.NewSystemErrorWithOp("template save", "database write failed", err)
	}
	return nil
}
