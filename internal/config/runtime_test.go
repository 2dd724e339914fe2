package config

import (
	"testing"
	"time"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	// Test HTTP defaults
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected HTTP.Timeout = 30s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxRetries != 3 {
		t.Errorf("expected HTTP.MaxRetries = 3, got %d", cfg.HTTP.MaxRetries)
	}
	if len(cfg.HTTP.RetryDelays) != 3 {
		t.Errorf("expected HTTP.RetryDelays length = 3, got %d", len(cfg.HTTP.RetryDelays))
	}

	// Test remote defaults
	if cfg.Remote.Account != "" {
		t.Errorf("expected Remote.Account empty by default, got %q", cfg.Remote.Account)
	}

	// Test sync defaults
	if cfg.Sync.WindowDays != 60 {
		t.Errorf("expected Sync.WindowDays = 60, got %d", cfg.Sync.WindowDays)
	}

	// Test storage defaults
	if cfg.Storage.Path != "" {
		t.Errorf("expected Storage.Path empty by default, got %q", cfg.Storage.Path)
	}
	if cfg.Storage.MinFreeSpace != 10*1024*1024 {
		t.Errorf("expected Storage.MinFreeSpace = 10MB, got %d", cfg.Storage.MinFreeSpace)
	}
	if cfg.Storage.MinFreeSpaceWarning != 50*1024*1024 {
		t.Errorf("expected Storage.MinFreeSpaceWarning = 50MB, got %d", cfg.Storage.MinFreeSpaceWarning)
	}
}

func TestGlobalConfigExists(t *testing.T) {
	if Global == nil {
		t.Fatal("Global config should not be nil")
	}
}

func TestConfigReset(t *testing.T) {
	// Modify global config
	Global.HTTP.Timeout = 1 * time.Second
	Global.Remote.Account = "someone"

	// Reset
	Global.Reset()

	// Verify it's back to defaults
	if Global.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected HTTP.Timeout = 30s after reset, got %v", Global.HTTP.Timeout)
	}
	if Global.Remote.Account != "" {
		t.Errorf("expected Remote.Account empty after reset, got %q", Global.Remote.Account)
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	// Save and restore global state
	originalCfg := *Global
	defer func() {
		*Global = originalCfg
	}()

	t.Setenv("DAYBOOK_HTTP_TIMEOUT", "10s")
	t.Setenv("DAYBOOK_HTTP_MAX_RETRIES", "5")
	t.Setenv("DAYBOOK_REMOTE_URL", "https://example.com")
	t.Setenv("DAYBOOK_ACCOUNT", "acct-42")
	t.Setenv("DAYBOOK_TOKEN", "tok")
	t.Setenv("DAYBOOK_SYNC_WINDOW_DAYS", "14")
	t.Setenv("DAYBOOK_DATABASE", "/tmp/daybook-test-db")
	t.Setenv("DAYBOOK_MIN_FREE_SPACE", "1048576")

	Global.Reset()
	Global.ReloadFromEnv()

	if Global.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected HTTP.Timeout = 10s, got %v", Global.HTTP.Timeout)
	}
	if Global.HTTP.MaxRetries != 5 {
		t.Errorf("expected HTTP.MaxRetries = 5, got %d", Global.HTTP.MaxRetries)
	}
	if Global.Remote.BaseURL != "https://example.com" {
		t.Errorf("expected Remote.BaseURL = https://example.com, got %q", Global.Remote.BaseURL)
	}
	if Global.Remote.Account != "acct-42" {
		t.Errorf("expected Remote.Account = acct-42, got %q", Global.Remote.Account)
	}
	if Global.Remote.Token != "tok" {
		t.Errorf("expected Remote.Token = tok, got %q", Global.Remote.Token)
	}
	if Global.Sync.WindowDays != 14 {
		t.Errorf("expected Sync.WindowDays = 14, got %d", Global.Sync.WindowDays)
	}
	if Global.Storage.Path != "/tmp/daybook-test-db" {
		t.Errorf("expected Storage.Path override, got %q", Global.Storage.Path)
	}
	if Global.Storage.MinFreeSpace != 1048576 {
		t.Errorf("expected Storage.MinFreeSpace = 1048576, got %d", Global.Storage.MinFreeSpace)
	}
}

func TestConfigInvalidEnvIgnored(t *testing.T) {
	originalCfg := *Global
	defer func() {
		*Global = originalCfg
	}()

	t.Setenv("DAYBOOK_HTTP_TIMEOUT", "not-a-duration")
	t.Setenv("DAYBOOK_HTTP_MAX_RETRIES", "-2")
	t.Setenv("DAYBOOK_SYNC_WINDOW_DAYS", "0")

	Global.Reset()
	Global.ReloadFromEnv()

	if Global.HTTP.Timeout != 30*time.Second {
		t.Errorf("invalid timeout should keep default, got %v", Global.HTTP.Timeout)
	}
	if Global.HTTP.MaxRetries != 3 {
		t.Errorf("negative retries should keep default, got %d", Global.HTTP.MaxRetries)
	}
	if Global.Sync.WindowDays != 60 {
		t.Errorf("zero window should keep default, got %d", Global.Sync.WindowDays)
	}
}
