// Package config loads cmsecosystem settings.
//
// Values are layered: built-in defaults, then an optional TOML file, then
// CMSECOSYSTEM_* environment variables. Command-line flags are applied by
// the caller on top of the result.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/integrations"
	"github.com/matzehuels/cmsecosystem/pkg/integrations/github"
)

const appName = "cmsecosystem"

// Defaults.
const (
	DefaultCacheTTL = 24 * time.Hour
	DefaultListen   = ":8080"
)

// Config holds the runtime settings.
type Config struct {
	SourceURL string        `toml:"source_url"`
	CacheDir  string        `toml:"cache_dir"`
	CacheTTL  time.Duration `toml:"cache_ttl"`
	MaxAge    time.Duration `toml:"max_age"`
	Timeout   time.Duration `toml:"timeout"`
	Listen    string        `toml:"listen"`
	RedisURL  string        `toml:"redis_url"`
	NoCache   bool          `toml:"no_cache"`
}

// file mirrors Config with durations as strings ("12h", "90s").
type file struct {
	SourceURL string `toml:"source_url"`
	CacheDir  string `toml:"cache_dir"`
	CacheTTL  string `toml:"cache_ttl"`
	MaxAge    string `toml:"max_age"`
	Timeout   string `toml:"timeout"`
	Listen    string `toml:"listen"`
	RedisURL  string `toml:"redis_url"`
	NoCache   *bool  `toml:"no_cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	dir, _ := CacheDir()
	return Config{
		SourceURL: github.DefaultDocumentURL,
		CacheDir:  dir,
		CacheTTL:  DefaultCacheTTL,
		MaxAge:    ecosystem.DefaultMaxAge,
		Timeout:   integrations.DefaultTimeout,
		Listen:    DefaultListen,
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path means the default location, which may be
// absent. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return cfg, err
		}
	}

	cfg.loadEnv()
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	setString(&c.SourceURL, f.SourceURL)
	setString(&c.CacheDir, f.CacheDir)
	setString(&c.Listen, f.Listen)
	setString(&c.RedisURL, f.RedisURL)
	if f.NoCache != nil {
		c.NoCache = *f.NoCache
	}
	for _, d := range []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"cache_ttl", f.CacheTTL, &c.CacheTTL},
		{"max_age", f.MaxAge, &c.MaxAge},
		{"timeout", f.Timeout, &c.Timeout},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: %s", path, d.key)
		}
		*d.dst = v
	}
	return nil
}

func (c *Config) loadEnv() {
	c.SourceURL = envOr("CMSECOSYSTEM_URL", c.SourceURL)
	c.CacheDir = envOr("CMSECOSYSTEM_CACHE_DIR", c.CacheDir)
	c.CacheTTL = envDuration("CMSECOSYSTEM_CACHE_TTL", c.CacheTTL)
	c.MaxAge = envDuration("CMSECOSYSTEM_MAX_AGE", c.MaxAge)
	c.Timeout = envDuration("CMSECOSYSTEM_TIMEOUT", c.Timeout)
	c.Listen = envOr("CMSECOSYSTEM_LISTEN", c.Listen)
	c.RedisURL = envOr("CMSECOSYSTEM_REDIS_URL", c.RedisURL)
	c.NoCache = envBool("CMSECOSYSTEM_NO_CACHE", c.NoCache)
}

// Validate checks the source URL and durations.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.SourceURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source_url")
	}
	if c.CacheTTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must be positive, got %s", c.CacheTTL)
	}
	if c.MaxAge <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_age must be positive, got %s", c.MaxAge)
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive, got %s", c.Timeout)
	}
	if c.Listen == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "listen address is empty")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/cmsecosystem/config.toml, falling
// back to ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// CacheDir returns the cache directory using XDG standard (~/.cache/cmsecosystem/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
