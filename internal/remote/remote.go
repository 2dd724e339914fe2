// Package remote defines the transport to the account-scoped backend
// and its HTTP implementation.
//
// The backend stores at most one row per (account, date). Row timestamps
// are server-assigned and monotonically non-decreasing per upsert; the
// sync engine relies on that, never on device clocks, when comparing
// remote rows.
package remote

import (
	"context"
	"encoding/json"
)

// Row is one remote day row: the record payload plus the server-assigned
// update time in epoch milliseconds.
type Row struct {
	Date      string          `json:"date"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt int64           `json:"updated_at"`
}

// Transport is the remote store consumed by the sync engine.
type Transport interface {
	// RowUpdatedAt probes the server timestamp for one (account, date)
	// row without fetching the payload. ok=false means no row exists.
	RowUpdatedAt(ctx context.Context, account, dateKey string) (updatedAt int64, ok bool, err error)

	// UpsertRow creates or replaces the row for (account, date). The
	// server stamps a fresh updated_at.
	UpsertRow(ctx context.Context, account, dateKey string, payload json.RawMessage) error

	// ListRows returns every row for the account with from <= date <= to.
	ListRows(ctx context.Context, account, from, to string) ([]Row, error)
}

// Identity reports the currently authenticated account, if any. Account
// management itself lives outside this core.
type Identity interface {
	AccountID() (string, bool)
}

// StaticIdentity is an Identity fixed at construction, typically from
// configuration.
type StaticIdentity struct {
	Account string
}

// AccountID returns the configured account, ok=false when signed out.
func (s StaticIdentity) AccountID() (string, bool) {
	return s.Account, s.Account != ""
}
