package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTextHandler(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info("sync complete", KeyPushed, 3, KeyPulled, 1)

	out := buf.String()
	assert.Contains(t, out, "sync complete")
	assert.Contains(t, out, "pushed=3")
	assert.Contains(t, out, "pulled=1")
}

func TestInitJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	assert.True(t, Debug)
	DebugLog("push decision", KeyDateKey, "2026-01-15")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "push decision", entry["msg"])
	assert.Equal(t, "2026-01-15", entry["date_key"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelWarn, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info("should be dropped")
	Warn("should appear")

	assert.NotContains(t, buf.String(), "should be dropped")
	assert.Contains(t, buf.String(), "should appear")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	With(KeyAccount, "acct-1").Info("pull phase")
	assert.Contains(t, buf.String(), "account=acct-1")
}
