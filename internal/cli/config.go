package cli

import (
	"errors"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/integrations"
	"github.com/matzehuels/ossinfo/pkg/integrations/maven"
	"github.com/matzehuels/ossinfo/pkg/inventory"
	"github.com/matzehuels/ossinfo/pkg/server"
	"github.com/matzehuels/ossinfo/pkg/store"
)

// defaultCacheTTL is how long repository lookups are reused.
const defaultCacheTTL = 24 * time.Hour

// Config is the optional TOML configuration file.
//
//	concurrency = 8
//	cache_ttl   = "24h"
//	cache_url   = "redis://localhost:6379/0"
//	timeout     = "10s"
//	mongo_uri   = "mongodb://localhost:27017"
//
//	[[repository]]
//	prefix = "com.example"
//	url    = "https://maven.example.com/releases"
type Config struct {
	Concurrency   int                `toml:"concurrency"`
	CacheTTL      duration           `toml:"cache_ttl"`
	CacheURL      string             `toml:"cache_url"`
	CacheDir      string             `toml:"cache_dir"`
	Timeout       duration           `toml:"timeout"`
	MongoURI      string             `toml:"mongo_uri"`
	MongoDatabase string             `toml:"mongo_database"`
	Addr          string             `toml:"addr"`
	Repositories  []maven.Repository `toml:"repository"`
}

// duration reads Go duration strings ("90s", "24h") from TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() *Config {
	return &Config{
		Concurrency:   inventory.DefaultConcurrency,
		CacheTTL:      duration{defaultCacheTTL},
		Timeout:       duration{integrations.DefaultTimeout},
		MongoDatabase: store.DefaultDatabase,
		Addr:          server.DefaultAddr,
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly. Unknown keys are returned so the
// caller can warn about them.
func loadConfig(path string, explicit bool) (*Config, []string, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return defaultConfig(), nil, nil
		}
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "failed to load config %s", path)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}

	if err := cfg.validate(); err != nil {
		return nil, unknown, err
	}
	return cfg, unknown, nil
}

func (c *Config) validate() error {
	if c.Concurrency <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout.Duration <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "timeout must be positive, got %s", c.Timeout)
	}
	for i, r := range c.Repositories {
		if err := errs.ValidateURL(r.URL); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "repository %d", i+1)
		}
	}
	return nil
}
