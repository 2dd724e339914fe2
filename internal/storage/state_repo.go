package storage

import (
	"github.com/google/uuid"

	"github.com/mwhitford/daybook/internal/model"
)

// StateRepo provides operations for the AppState singleton.
type StateRepo struct {
	db *DB
}

// NewStateRepo creates a new app state repository.
func NewStateRepo(db *DB) *StateRepo {
	return &StateRepo{db: db}
}

// Get retrieves the app state, creating it if it doesn't exist.
func (r *StateRepo) Get() (*model.AppState, error) {
	state := &model.AppState{}
	err := r.db.Get(model.KeyAppState, state)
	if err == nil {
		return state, nil
	}

	if !IsErrKeyNotFound(err) {
		return nil, err
	}

	// First open on this device: generate its identity.
	deviceID, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	state = model.NewAppState(deviceID.String())
	if err := r.db.Set(state); err != nil {
		return nil, err
	}

	return state, nil
}

// Update updates the app state.
func (r *StateRepo) Update(state *model.AppState) error {
	return r.db.Set(state)
}

// MigrationOffered reports whether the first-sync bootstrap decision has
// already been shown or resolved on this device.
func (r *StateRepo) MigrationOffered() (bool, error) {
	state, err := r.Get()
	if err != nil {
		return false, err
	}
	return state.MigrationOffered, nil
}

// SetMigrationOffered marks the bootstrap decision as handled so the
// prompt never reappears.
func (r *StateRepo) SetMigrationOffered() error {
	state, err := r.Get()
	if err != nil {
		return err
	}
	state.MigrationOffered = true
	return r.Update(state)
}

// LastSync returns the wall-clock time of the last fully successful
// sync, zero if none.
func (r *StateRepo) LastSync() (int64, error) {
	state, err := r.Get()
	if err != nil {
		return 0, err
	}
	return state.LastSyncMillis, nil
}

// SetLastSync records the time of a successful sync cycle.
func (r *StateRepo) SetLastSync(millis int64) error {
	state, err := r.Get()
	if err != nil {
		return err
	}
	state.LastSyncMillis = millis
	return r.Update(state)
}
