// Package sync reconciles the local day-record store with the remote
// backend.
//
// Synchronization is a batch operation over a rolling window of recent
// days: push local records the remote is missing or has older, then pull
// remote rows the local store is missing or has older. Conflicts resolve
// last-write-wins on timestamps, with a strict comparison so re-running
// with no new edits performs zero writes. Both directions skip empty
// records, so a device that was never used on a day can never blank a
// populated row, and a blank remote placeholder can never clobber local
// data.
//
// Known limitation: the local side of the comparison is device wall
// clock while the remote side is server-assigned, so a badly skewed
// device clock can lose edits. No skew correction is attempted.
package sync

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mwhitford/daybook/internal/dates"
	"github.com/mwhitford/daybook/internal/errors"
	"github.com/mwhitford/daybook/internal/logging"
	"github.com/mwhitford/daybook/internal/migrate"
	"github.com/mwhitford/daybook/internal/model"
	"github.com/mwhitford/daybook/internal/remote"
	"github.com/mwhitford/daybook/internal/storage"
)

// DefaultWindowDays is the size of the rolling sync window. Older
// history is sync-exempt to bound cost and staleness risk.
const DefaultWindowDays = 60

// Result reports the outcome of one sync cycle. Counts accumulate even
// when later keys fail; committed keys stay committed.
type Result struct {
	Success bool     `json:"success"`
	Pushed  int      `json:"pushed"`
	Pulled  int      `json:"pulled"`
	Errors  []string `json:"errors,omitempty"`
}

// Engine owns one device's sync state: the session-modified set and the
// in-flight guard. Construct one per session and share it; the zero
// value is not usable.
type Engine struct {
	days     *storage.DayRepo
	state    *storage.StateRepo
	remote   remote.Transport
	identity remote.Identity
	window   int

	mu       sync.Mutex
	inFlight bool
	modified map[string]struct{}
}

// NewEngine creates a sync engine. windowDays <= 0 selects the default.
func NewEngine(days *storage.DayRepo, state *storage.StateRepo, transport remote.Transport, identity remote.Identity, windowDays int) *Engine {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Engine{
		days:     days,
		state:    state,
		remote:   transport,
		identity: identity,
		window:   windowDays,
		modified: map[string]struct{}{},
	}
}

// MarkModified records that the current session edited a date key. The
// mark breaks timestamp ties in favor of this device until the next
// fully successful sync. It is not persisted; a restart falls back to
// pure timestamp comparison.
func (e *Engine) MarkModified(dateKey string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modified[dateKey] = struct{}{}
}

func (e *Engine) isModified(dateKey string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.modified[dateKey]
	return ok
}

func (e *Engine) clearModified() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modified = map[string]struct{}{}
}

// begin claims the in-flight slot, failing if a cycle is already running.
func (e *Engine) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return false
	}
	e.inFlight = true
	return true
}

func (e *Engine) end() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
}

// shouldUseCloud decides the winning side for one date key.
//
// A key edited this session that has never been stamped locally is a
// just-created record that has not round-tripped yet: local wins. A key
// with no local stamp at all has never been touched here: cloud wins.
// Otherwise strictly newer wins, and exact equality prefers local so an
// unchanged store syncs to zero writes.
func shouldUseCloud(localTS int64, hasLocal bool, cloudTS int64, modifiedThisSession bool) bool {
	if modifiedThisSession && !hasLocal {
		return false
	}
	if !hasLocal {
		return true
	}
	return cloudTS > localTS
}

// Sync runs one full push+pull cycle over the rolling window.
//
// Two invocations never interleave: a second call while one runs is
// rejected with ErrSyncInFlight rather than queued, because interleaved
// cycles could each read a pre-decision timestamp for the same key and
// both decide to write. With no signed-in account the cycle is a no-op
// success with zero counts.
//
// Per-key failures do not abort the batch; they are collected in
// Result.Errors and the remaining keys proceed. Only a fully clean cycle
// advances the last-sync time and clears the session-modified set.
func (e *Engine) Sync(ctx context.Context) (Result, error) {
	account, ok := e.identity.AccountID()
	if !ok {
		return Result{Success: true}, nil
	}

	if !e.begin() {
		return Result{}, errors.ErrSyncInFlight
	}
	defer e.end()

	today := dates.Today()
	start, err := dates.WindowStart(today, e.window)
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	e.push(ctx, account, start, today, &res)
	e.pull(ctx, account, start, today, &res)

	res.Success = len(res.Errors) == 0
	if res.Success {
		if err := e.state.SetLastSync(time.Now().UnixMilli()); err != nil {
			return res, err
		}
		e.clearModified()
	}

	logging.Info("sync complete",
		logging.KeyAccount, account,
		logging.KeyPushed, res.Pushed,
		logging.KeyPulled, res.Pulled,
		logging.KeyCount, len(res.Errors))
	return res, nil
}

// push uploads every non-empty local record in the window that the
// remote is missing or has older.
func (e *Engine) push(ctx context.Context, account, start, today string, res *Result) {
	keys, err := e.days.Keys()
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return
	}

	for _, dateKey := range keys {
		if !dates.InRange(dateKey, start, today) {
			continue
		}

		rec, err := e.days.Get(dateKey)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		if rec.IsEmpty() {
			continue
		}

		localTS, hasLocal, err := e.days.LocalUpdatedAt(dateKey)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}

		cloudTS, exists, err := e.remote.RowUpdatedAt(ctx, account, dateKey)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}

		// Matching timestamps mean the key is already in sync; writing
		// would bump the server time and re-sync it forever.
		if exists && hasLocal && cloudTS == localTS {
			continue
		}

		// A key the remote has never seen is always pushed; otherwise
		// the same tie-break as pull, inverted.
		useLocal := !exists || !shouldUseCloud(localTS, hasLocal, cloudTS, e.isModified(dateKey))
		if !useLocal {
			continue
		}

		payload, err := encodeRecord(rec)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		if err := e.remote.UpsertRow(ctx, account, dateKey, payload); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Pushed++
		logging.DebugLog("pushed day", logging.KeyDateKey, dateKey)
	}
}

// pull downloads every non-empty remote row in the window that is newer
// than the local copy, stamping local metadata with the row's server
// time so the next cycle sees the key as already synced.
func (e *Engine) pull(ctx context.Context, account, start, today string, res *Result) {
	rows, err := e.remote.ListRows(ctx, account, start, today)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return
	}

	for _, row := range rows {
		if !dates.IsValid(row.Date) || !dates.InRange(row.Date, start, today) {
			continue
		}

		localTS, hasLocal, err := e.days.LocalUpdatedAt(row.Date)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}

		if !shouldUseCloud(localTS, hasLocal, row.UpdatedAt, e.isModified(row.Date)) {
			continue
		}

		rec, err := migrate.Day(row.Date, row.Payload)
		if err != nil {
			// Unreadable payload counts as empty: never clobber local.
			logging.Warn("unreadable remote payload",
				logging.KeyDateKey, row.Date, logging.KeyError, err.Error())
			continue
		}
		if rec.IsEmpty() {
			continue
		}

		if err := e.days.PutFromSync(row.Date, rec, row.UpdatedAt); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Pulled++
		logging.DebugLog("pulled day", logging.KeyDateKey, row.Date)
	}
}

// encodeRecord marshals a record for the wire without its local store key.
func encodeRecord(rec *model.DayRecord) (json.RawMessage, error) {
	cp := *rec
	cp.Key = ""
	return json.Marshal(&cp)
}
