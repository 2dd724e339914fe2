package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/daybook/internal/dates"
	"github.com/mwhitford/daybook/internal/model"
	"github.com/mwhitford/daybook/internal/remote"
	"github.com/mwhitford/daybook/internal/storage"
)

func setupBootstrap(t *testing.T) (*Bootstrap, *storage.DayRepo, *storage.StateRepo, *fakeTransport) {
	t.Helper()
	engine, days, state, fake := setupEngine(t)
	return NewBootstrap(engine), days, state, fake
}

// =============================================================================
// Classification
// =============================================================================

func TestBootstrapCheckNoAccount(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	engine := NewEngine(storage.NewDayRepo(db), storage.NewStateRepo(db), newFakeTransport(), remote.StaticIdentity{}, 0)
	state, err := NewBootstrap(engine).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)
}

func TestBootstrapCheckBothSidesFresh(t *testing.T) {
	boot, _, state, _ := setupBootstrap(t)

	got, err := boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, got)

	// Silently resolved: the flag is set and later checks stay quiet.
	offered, err := state.MigrationOffered()
	require.NoError(t, err)
	assert.True(t, offered)

	got, err = boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got)
}

func TestBootstrapCheckLocalOnly(t *testing.T) {
	boot, days, _, _ := setupBootstrap(t)
	require.NoError(t, days.Put(dates.Today(), dayWithWater(100)))

	got, err := boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateUpload, got)
}

func TestBootstrapCheckCloudOnly(t *testing.T) {
	boot, _, _, fake := setupBootstrap(t)
	fake.seed(dates.Today(), dayWithWater(100), time.Now().UnixMilli())

	got, err := boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDownload, got)
}

func TestBootstrapCheckBothSides(t *testing.T) {
	boot, days, _, fake := setupBootstrap(t)
	today := dates.Today()
	yesterday, err := dates.Shift(today, -1)
	require.NoError(t, err)

	require.NoError(t, days.Put(today, dayWithWater(100)))
	fake.seed(yesterday, dayWithWater(200), time.Now().UnixMilli())

	got, err := boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateMerge, got)
}

func TestBootstrapCheckIgnoresEmptyRecords(t *testing.T) {
	boot, days, _, fake := setupBootstrap(t)
	today := dates.Today()
	yesterday, err := dates.Shift(today, -1)
	require.NoError(t, err)

	// Blank placeholders on both sides count as no data at all.
	require.NoError(t, days.Put(today, model.NewEmptyDay()))
	fake.seed(yesterday, model.NewEmptyDay(), time.Now().UnixMilli())

	got, err := boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, got)
}

// =============================================================================
// Actions
// =============================================================================

func TestBootstrapUpload(t *testing.T) {
	boot, days, state, fake := setupBootstrap(t)
	today := dates.Today()
	yesterday, err := dates.Shift(today, -1)
	require.NoError(t, err)

	require.NoError(t, days.Put(today, dayWithWater(100)))
	require.NoError(t, days.Put(yesterday, model.NewEmptyDay()))

	pushed, err := boot.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pushed)

	row, ok := fake.row(today)
	require.True(t, ok)
	assert.Equal(t, 100, decodeRow(t, row).WaterML)
	_, ok = fake.row(yesterday)
	assert.False(t, ok)

	offered, err := state.MigrationOffered()
	require.NoError(t, err)
	assert.True(t, offered)
}

func TestBootstrapUploadOverwritesNewerCloud(t *testing.T) {
	boot, days, _, fake := setupBootstrap(t)
	today := dates.Today()
	require.NoError(t, days.Put(today, dayWithWater(100)))
	fake.seed(today, dayWithWater(999), time.Now().UnixMilli()+1_000_000)

	pushed, err := boot.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pushed)

	row, _ := fake.row(today)
	assert.Equal(t, 100, decodeRow(t, row).WaterML)
}

func TestBootstrapDownload(t *testing.T) {
	boot, days, state, fake := setupBootstrap(t)
	today := dates.Today()
	yesterday, err := dates.Shift(today, -1)
	require.NoError(t, err)

	remoteTS := time.Now().UnixMilli() + 100_000
	fake.seed(today, dayWithWater(400), remoteTS)
	fake.seed(yesterday, model.NewEmptyDay(), remoteTS)

	pulled, err := boot.Download(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pulled)

	rec, err := days.Get(today)
	require.NoError(t, err)
	assert.Equal(t, 400, rec.WaterML)

	localTS, hasLocal, err := days.LocalUpdatedAt(today)
	require.NoError(t, err)
	require.True(t, hasLocal)
	assert.Equal(t, remoteTS, localTS)

	offered, err := state.MigrationOffered()
	require.NoError(t, err)
	assert.True(t, offered)
}

func TestBootstrapDownloadOverwritesLocal(t *testing.T) {
	boot, days, _, fake := setupBootstrap(t)
	today := dates.Today()

	require.NoError(t, days.Put(today, dayWithWater(100)))
	// Seeded behind the local stamp on purpose: download is one-shot and
	// unconditional, unlike sync.
	fake.seed(today, dayWithWater(400), 1)

	pulled, err := boot.Download(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pulled)

	rec, err := days.Get(today)
	require.NoError(t, err)
	assert.Equal(t, 400, rec.WaterML)
}

func TestBootstrapMerge(t *testing.T) {
	boot, days, state, fake := setupBootstrap(t)
	today := dates.Today()
	yesterday, err := dates.Shift(today, -1)
	require.NoError(t, err)

	require.NoError(t, days.Put(today, dayWithWater(100)))
	fake.seed(yesterday, dayWithWater(200), time.Now().UnixMilli()+100_000)

	res, err := boot.Merge(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Pushed)

	rec, err := days.Get(yesterday)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.WaterML)
	row, ok := fake.row(today)
	require.True(t, ok)
	assert.Equal(t, 100, decodeRow(t, row).WaterML)

	offered, err := state.MigrationOffered()
	require.NoError(t, err)
	assert.True(t, offered)
}

func TestBootstrapDismiss(t *testing.T) {
	boot, _, state, fake := setupBootstrap(t)
	fake.seed(dates.Today(), dayWithWater(100), time.Now().UnixMilli())

	require.NoError(t, boot.Dismiss())

	offered, err := state.MigrationOffered()
	require.NoError(t, err)
	assert.True(t, offered)

	got, err := boot.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got)
}
