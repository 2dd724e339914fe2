package sync

import (
	"context"

	"github.com/mwhitford/daybook/internal/dates"
	"github.com/mwhitford/daybook/internal/logging"
	"github.com/mwhitford/daybook/internal/migrate"
)

// State is a bootstrap flow state. The three decision states are the
// only user-visible ones; each offers exactly one primary action plus
// dismiss.
type State string

const (
	StateIdle     State = "idle"
	StateChecking State = "checking"
	StateUpload   State = "upload"
	StateDownload State = "download"
	StateMerge    State = "merge"
	StateDone     State = "done"
)

// Bootstrap is the one-time first-sync decision flow. When a device
// first authenticates it classifies the device+account pairing into
// upload, download, merge, or nothing-to-do, then delegates the data
// movement. The whole flow is gated by a persisted flag so it resolves
// at most once per device, dismiss included.
type Bootstrap struct {
	engine *Engine
}

// NewBootstrap creates the bootstrap flow around an existing engine.
func NewBootstrap(engine *Engine) *Bootstrap {
	return &Bootstrap{engine: engine}
}

// Check classifies the pairing. It returns StateIdle when no account is
// signed in or the decision was already offered, StateDone when neither
// side has data (resolved silently, flag set), and otherwise one of the
// three decision states for the caller to render.
func (b *Bootstrap) Check(ctx context.Context) (State, error) {
	e := b.engine

	if _, ok := e.identity.AccountID(); !ok {
		return StateIdle, nil
	}
	offered, err := e.state.MigrationOffered()
	if err != nil {
		return StateIdle, err
	}
	if offered {
		return StateIdle, nil
	}

	hasLocal, err := b.hasLocalData()
	if err != nil {
		return StateIdle, err
	}
	hasCloud, err := b.hasCloudData(ctx)
	if err != nil {
		return StateIdle, err
	}

	var next State
	switch {
	case hasLocal && !hasCloud:
		next = StateUpload
	case hasCloud && !hasLocal:
		next = StateDownload
	case hasLocal && hasCloud:
		next = StateMerge
	default:
		// Nothing on either side: resolve silently, never ask again.
		if err := e.state.SetMigrationOffered(); err != nil {
			return StateIdle, err
		}
		next = StateDone
	}

	logging.Info("bootstrap check", logging.KeyState, string(next))
	return next, nil
}

// Upload pushes every non-empty local record in the window to the
// remote unconditionally. This path exists for a device whose data
// predates the account, so no timestamp comparison applies.
func (b *Bootstrap) Upload(ctx context.Context) (int, error) {
	e := b.engine
	account, ok := e.identity.AccountID()
	if !ok {
		return 0, nil
	}

	start, today, err := b.window()
	if err != nil {
		return 0, err
	}
	keys, err := e.days.Keys()
	if err != nil {
		return 0, err
	}

	pushed := 0
	for _, dateKey := range keys {
		if !dates.InRange(dateKey, start, today) {
			continue
		}
		rec, err := e.days.Get(dateKey)
		if err != nil {
			return pushed, err
		}
		if rec.IsEmpty() {
			continue
		}
		payload, err := encodeRecord(rec)
		if err != nil {
			return pushed, err
		}
		if err := e.remote.UpsertRow(ctx, account, dateKey, payload); err != nil {
			return pushed, err
		}
		pushed++
	}

	return pushed, e.state.SetMigrationOffered()
}

// Download pulls every non-empty remote row in the window into the
// local store unconditionally, overwriting local.
func (b *Bootstrap) Download(ctx context.Context) (int, error) {
	e := b.engine
	account, ok := e.identity.AccountID()
	if !ok {
		return 0, nil
	}

	start, today, err := b.window()
	if err != nil {
		return 0, err
	}
	rows, err := e.remote.ListRows(ctx, account, start, today)
	if err != nil {
		return 0, err
	}

	pulled := 0
	for _, row := range rows {
		if !dates.IsValid(row.Date) {
			continue
		}
		rec, err := migrate.Day(row.Date, row.Payload)
		if err != nil || rec.IsEmpty() {
			continue
		}
		if err := e.days.PutFromSync(row.Date, rec, row.UpdatedAt); err != nil {
			return pulled, err
		}
		pulled++
	}

	return pulled, e.state.SetMigrationOffered()
}

// Merge runs the full timestamp-aware sync protocol, because both sides
// hold data that might conflict.
func (b *Bootstrap) Merge(ctx context.Context) (Result, error) {
	res, err := b.engine.Sync(ctx)
	if err != nil {
		return res, err
	}
	return res, b.engine.state.SetMigrationOffered()
}

// Dismiss resolves the flow with no data movement. The prompt never
// reappears afterwards.
func (b *Bootstrap) Dismiss() error {
	return b.engine.state.SetMigrationOffered()
}

func (b *Bootstrap) window() (start, today string, err error) {
	today = dates.Today()
	start, err = dates.WindowStart(today, b.engine.window)
	return start, today, err
}

func (b *Bootstrap) hasLocalData() (bool, error) {
	e := b.engine
	start, today, err := b.window()
	if err != nil {
		return false, err
	}
	keys, err := e.days.Keys()
	if err != nil {
		return false, err
	}
	for _, dateKey := range keys {
		if !dates.InRange(dateKey, start, today) {
			continue
		}
		rec, err := e.days.Get(dateKey)
		if err != nil {
			return false, err
		}
		if !rec.IsEmpty() {
			return true, nil
		}
	}
	return false, nil
}

func (b *Bootstrap) hasCloudData(ctx context.Context) (bool, error) {
	e := b.engine
	account, _ := e.identity.AccountID()
	start, today, err := b.window()
	if err != nil {
		return false, err
	}
	rows, err := e.remote.ListRows(ctx, account, start, today)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		rec, err := migrate.Day(row.Date, row.Payload)
		if err != nil {
			continue
		}
		if !rec.IsEmpty() {
			return true, nil
		}
	}
	return false, nil
}
