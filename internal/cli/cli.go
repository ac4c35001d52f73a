package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ossinfo/pkg/cache"
	"github.com/matzehuels/ossinfo/pkg/integrations/maven"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ossinfo"

	// failedLookupsMessage is returned when the report was written but some
	// lookups failed.
	failedLookupsMessage = "finished but an error occurred in some requests"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string  // --config
	config     *Config // loaded before any subcommand runs
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Client Factory
// =============================================================================

// cacheFlags are shared by every command that talks to a repository.
type cacheFlags struct {
	noCache  bool
	cacheURL string
	refresh  bool
}

// openCache opens the configured cache backend. A missing home directory
// disables the file cache instead of failing.
func (c *CLI) openCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	url := f.cacheURL
	if url == "" {
		url = c.config.CacheURL
	}
	dir := c.config.CacheDir
	if dir == "" && url == "" && !f.noCache {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warnf("cache disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.Open(ctx, cache.Options{Disabled: f.noCache, URL: url, Dir: dir})
}

// newMavenClient creates the repository client used by collect and serve.
// The caller owns the returned cache and must close it.
func (c *CLI) newMavenClient(ctx context.Context, f cacheFlags) (*maven.Client, cache.Cache, error) {
	store, err := c.openCache(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	client := maven.NewClient(store, c.config.CacheTTL.Duration, c.config.Repositories)
	client.SetHTTPClient(&http.Client{Timeout: c.config.Timeout.Duration})
	return client, store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ossinfo/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configFile returns the default config file path (~/.config/ossinfo/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
