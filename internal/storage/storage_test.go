package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/daybook/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk_takes_lock", func(t *testing.T) {
		dir := t.TempDir()
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		defer db.Close()

		_, err = Open(Options{Path: dir})
		assert.Error(t, err)
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "daybook")
	assert.Contains(t, path, "db")
}

// =============================================================================
// DayRepo Tests
// =============================================================================

func TestDayRepoGetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	rec, err := repo.Get("2026-01-15")
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())

	// A missing record leaves no trace.
	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestDayRepoGetInvalidKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	_, err := repo.Get("not-a-date")
	assert.Error(t, err)
}

func TestDayRepoPutStampsMetadata(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	before := time.Now().UnixMilli()
	rec := model.NewEmptyDay()
	rec.WaterML = 500
	require.NoError(t, repo.Put("2026-01-15", rec))
	after := time.Now().UnixMilli()

	ts, ok, err := repo.LocalUpdatedAt("2026-01-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)

	got, err := repo.Get("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, 500, got.WaterML)
}

func TestDayRepoPutFromSyncStampsRemoteTime(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	rec := model.NewEmptyDay()
	rec.WalkDone = true
	remoteTS := int64(1700000000000)
	require.NoError(t, repo.PutFromSync("2026-01-15", rec, remoteTS))

	ts, ok, err := repo.LocalUpdatedAt("2026-01-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, remoteTS, ts)
}

func TestDayRepoLocalUpdatedAtAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	_, ok, err := repo.LocalUpdatedAt("2026-01-15")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDayRepoKeysFiltersNamespace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	require.NoError(t, repo.Put("2026-01-15", model.NewEmptyDay()))
	require.NoError(t, repo.Put("2026-01-16", model.NewEmptyDay()))
	// An unrelated key sharing the prefix must not leak out.
	require.NoError(t, db.SetBytes("day:garbage", []byte(`{}`)))

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2026-01-15", "2026-01-16"}, keys)
}

func TestDayRepoMigratesOnRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	// A record written by a v0 client.
	legacy := []byte(`{"med_morning_taken": true, "second_med_taken": false}`)
	require.NoError(t, db.SetBytes(model.GenerateDayKey("2025-06-01"), legacy))

	rec, err := repo.Get("2025-06-01")
	require.NoError(t, err)
	require.Len(t, rec.PrimaryMed.Doses, model.PrimaryDoseCount)
	assert.True(t, rec.PrimaryMed.Doses[0].Taken)
	assert.False(t, rec.IsEmpty())
}

func TestDayRepoCorruptBlobDegradesToEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	require.NoError(t, db.SetBytes(model.GenerateDayKey("2026-01-15"), []byte(`{broken`)))

	rec, err := repo.Get("2026-01-15")
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())
}

func TestDayRepoReset(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDayRepo(db)

	rec := model.NewEmptyDay()
	rec.WaterML = 750
	require.NoError(t, repo.Put("2026-01-15", rec))

	require.NoError(t, repo.Reset("2026-01-15"))

	got, err := repo.Get("2026-01-15")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	// Metadata cleared: next sync treats the day as never touched.
	_, ok, err := repo.LocalUpdatedAt("2026-01-15")
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// StateRepo Tests
// =============================================================================

func TestStateRepoCreatesDeviceID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)

	state, err := repo.Get()
	require.NoError(t, err)
	assert.NotEmpty(t, state.DeviceID)

	again, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, state.DeviceID, again.DeviceID)
}

func TestStateRepoMigrationFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)

	offered, err := repo.MigrationOffered()
	require.NoError(t, err)
	assert.False(t, offered)

	require.NoError(t, repo.SetMigrationOffered())

	offered, err = repo.MigrationOffered()
	require.NoError(t, err)
	assert.True(t, offered)
}

func TestStateRepoLastSync(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)

	ts, err := repo.LastSync()
	require.NoError(t, err)
	assert.Zero(t, ts)

	require.NoError(t, repo.SetLastSync(1700000000000))

	ts, err = repo.LastSync()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), ts)
}

// =============================================================================
// SettingsRepo Tests
// =============================================================================

func TestSettingsRepoDefaultsWhenUnset(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	s, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 2000, s.WaterGoalML)

	// Defaults are not persisted until explicitly set.
	exists, err := db.Exists(model.KeySettings)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSettingsRepoRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	s := model.DefaultSettings()
	s.WaterGoalML = 2500
	require.NoError(t, repo.Set(s))

	got, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 2500, got.WaterGoalML)
}

func TestSettingsRepoMigratesLegacyShape(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	legacy := []byte(`{"schema_version": 1, "med_times": {"primary": ["06:00"], "secondary": "09:00"}}`)
	require.NoError(t, db.SetBytes(model.KeySettings, legacy))

	s, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"06:00"}, s.PrimaryMedTimes)
	assert.Equal(t, "09:00", s.SecondaryMedTime)
}
