// Package runtime provides application runtime context for Daybook.
package runtime

import (
	"os"

	"github.com/mwhitford/daybook/internal/config"
	"github.com/mwhitford/daybook/internal/output"
	"github.com/mwhitford/daybook/internal/remote"
	"github.com/mwhitford/daybook/internal/storage"
	"github.com/mwhitford/daybook/internal/sync"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	DayRepo      *storage.DayRepo
	StateRepo    *storage.StateRepo
	SettingsRepo *storage.SettingsRepo

	// Sync
	Identity  remote.Identity
	Engine    *sync.Engine
	Bootstrap *sync.Bootstrap

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	// Check for environment variable override
	if envPath := os.Getenv("DAYBOOK_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	} else if config.Global.Storage.Path != "" {
		opts.DBPath = config.Global.Storage.Path
	}

	// Open database
	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	// Create repositories
	dayRepo := storage.NewDayRepo(db)
	stateRepo := storage.NewStateRepo(db)
	settingsRepo := storage.NewSettingsRepo(db)

	// Create formatter
	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	// Wire the sync engine. Without a backend URL the identity reports
	// signed-out and every cycle is a local no-op.
	identity := remote.StaticIdentity{}
	if config.Global.Remote.BaseURL != "" {
		identity.Account = config.Global.Remote.Account
	}
	client := remote.NewClient(remote.ClientOptions{
		BaseURL:    config.Global.Remote.BaseURL,
		Token:      config.Global.Remote.Token,
		Timeout:    config.Global.HTTP.Timeout,
		MaxRetries: config.Global.HTTP.MaxRetries,
		RetryDelay: config.Global.HTTP.RetryDelays,
	})
	engine := sync.NewEngine(dayRepo, stateRepo, client, identity, config.Global.Sync.WindowDays)

	return &Context{
		DB:           db,
		Formatter:    formatter,
		DayRepo:      dayRepo,
		StateRepo:    stateRepo,
		SettingsRepo: settingsRepo,
		Identity:     identity,
		Engine:       engine,
		Bootstrap:    sync.NewBootstrap(engine),
		Debug:        opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// SignedIn reports whether an account is configured.
func (c *Context) SignedIn() bool {
	_, ok := c.Identity.AccountID()
	return ok
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
