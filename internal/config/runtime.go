// Package config provides centralized configuration for Daybook runtime values.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds all runtime configuration values that would otherwise
// be hardcoded as magic values throughout the codebase.
type RuntimeConfig struct {
	// HTTP client configuration
	HTTP HTTPConfig

	// Remote backend configuration
	Remote RemoteConfig

	// Sync engine configuration
	Sync SyncConfig

	// Storage configuration
	Storage StorageConfig
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the default HTTP request timeout.
	// Default: 30s
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 3
	MaxRetries int

	// RetryDelays are the delays between retry attempts.
	// Default: [0s, 5s, 30s]
	RetryDelays []time.Duration
}

// RemoteConfig holds the backend endpoint and credentials. Empty Account
// means signed out, which turns sync into a local no-op.
type RemoteConfig struct {
	// BaseURL is the backend endpoint, e.g. "https://api.example.com".
	BaseURL string

	// Account is the account identifier rows are scoped to.
	Account string

	// Token is the bearer token sent with every request.
	Token string
}

// SyncConfig holds sync engine configuration.
type SyncConfig struct {
	// WindowDays is the size of the rolling sync window.
	// Default: 60
	WindowDays int
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path overrides the database directory. Empty selects the XDG default.
	Path string

	// MinFreeSpace is the minimum free space required for write operations.
	// Default: 10MB (10 * 1024 * 1024 bytes)
	MinFreeSpace uint64

	// MinFreeSpaceWarning is the threshold for warning about low disk space.
	// Default: 50MB (50 * 1024 * 1024 bytes)
	MinFreeSpaceWarning uint64
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelays: []time.Duration{
				0,                // Immediate first attempt
				5 * time.Second,  // Retry after 5s
				30 * time.Second, // Retry after 30s
			},
		},
		Sync: SyncConfig{
			WindowDays: 60,
		},
		Storage: StorageConfig{
			MinFreeSpace:        10 * 1024 * 1024, // 10MB
			MinFreeSpaceWarning: 50 * 1024 * 1024, // 50MB
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// HTTP configuration
	if v := os.Getenv("DAYBOOK_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("DAYBOOK_HTTP_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.HTTP.MaxRetries = n
		}
	}

	// Remote configuration
	if v := os.Getenv("DAYBOOK_REMOTE_URL"); v != "" {
		c.Remote.BaseURL = v
	}
	if v := os.Getenv("DAYBOOK_ACCOUNT"); v != "" {
		c.Remote.Account = v
	}
	if v := os.Getenv("DAYBOOK_TOKEN"); v != "" {
		c.Remote.Token = v
	}

	// Sync configuration
	if v := os.Getenv("DAYBOOK_SYNC_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Sync.WindowDays = n
		}
	}

	// Storage configuration
	if v := os.Getenv("DAYBOOK_DATABASE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("DAYBOOK_MIN_FREE_SPACE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpace = n
		}
	}
	if v := os.Getenv("DAYBOOK_MIN_FREE_SPACE_WARNING"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Storage.MinFreeSpaceWarning = n
		}
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
