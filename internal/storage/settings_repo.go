package storage

import (
	"github.com/mwhitford/daybook/internal/logging"
	"github.com/mwhitford/daybook/internal/migrate"
	"github.com/mwhitford/daybook/internal/model"
)

// SettingsRepo provides operations for the Settings singleton.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get retrieves the settings, upgraded and merged over defaults.
// Defaults are returned (not persisted) when nothing is stored yet.
func (r *SettingsRepo) Get() (*model.Settings, error) {
	raw, err := r.db.GetBytes(model.KeySettings)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return model.DefaultSettings(), nil
		}
		return nil, err
	}

	s, err := migrate.Settings(raw)
	if err != nil {
		logging.Warn("unreadable settings, using defaults", logging.KeyError, err.Error())
	}
	return s, nil
}

// Set stores the settings at the current schema version.
func (r *SettingsRepo) Set(s *model.Settings) error {
	s.Key = model.KeySettings
	s.SchemaVersion = model.SettingsSchemaVersion
	return r.db.Set(s)
}
