package model

// AppState holds small persisted flags (singleton).
type AppState struct {
	Key string `json:"key"`

	// DeviceID identifies this install; generated once on first open.
	DeviceID string `json:"device_id"`

	// MigrationOffered is set once the first-sync bootstrap decision has
	// been shown or silently resolved. It never resets.
	MigrationOffered bool `json:"migration_offered"`

	// LastSyncMillis is the wall-clock time of the last fully successful
	// sync cycle. Advisory only; never used for conflict resolution.
	LastSyncMillis int64 `json:"last_sync_millis"`
}

// SetKey sets the database key for this state.
func (a *AppState) SetKey(key string) {
	a.Key = key
}

// GetKey returns the database key for this state.
func (a *AppState) GetKey() string {
	return a.Key
}

// NewAppState creates app state for a fresh install.
func NewAppState(deviceID string) *AppState {
	return &AppState{
		Key:      KeyAppState,
		DeviceID: deviceID,
	}
}
