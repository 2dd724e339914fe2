package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewStoreError("write", "day:2026-01-15", cause)

	assert.Equal(t, "store write failed for day:2026-01-15", err.Error())
	assert.True(t, IsStoreError(err))
	assert.True(t, stderrors.Is(err, cause))

	noKey := NewStoreError("open", "", cause)
	assert.Equal(t, "store open failed", noKey.Error())
}

func TestTransportErrorRetryable(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		retryable bool
	}{
		{"network", 0, true},
		{"rate_limited", 429, true},
		{"server_error", 500, true},
		{"bad_gateway", 502, true},
		{"unauthorized", 401, false},
		{"not_found", 404, false},
		{"bad_request", 400, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewTransportError("upsert", tc.status, "boom", nil)
			assert.Equal(t, tc.retryable, err.Retryable())
		})
	}
}

func TestTransportErrorWrapped(t *testing.T) {
	err := Wrap(NewTransportError("list", 503, "unavailable", nil), "pull phase")

	assert.True(t, IsTransportError(err))
	te, ok := AsTransportError(err)
	assert.True(t, ok)
	assert.Equal(t, 503, te.StatusCode)
}

func TestShapeError(t *testing.T) {
	err := NewShapeError("day:2026-01-15", stderrors.New("unexpected end of JSON input"))

	assert.True(t, IsShapeError(err))
	assert.Contains(t, err.Error(), "day:2026-01-15")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}

func TestSentinels(t *testing.T) {
	assert.True(t, Is(Wrap(ErrSyncInFlight, "sync"), ErrSyncInFlight))
	assert.True(t, Is(Wrap(ErrNotAuthenticated, "sync"), ErrNotAuthenticated))
}
