// Package config provides configuration management for socialfeed.
//
// Config file locations (priority order):
//  1. $SOCIALFEED_CONFIG
//  2. ./socialfeed.yaml
//  3. $XDG_CONFIG_HOME/socialfeed/config.yaml
//  4. ~/.config/socialfeed/config.yaml
//  5. /etc/socialfeed/config.yaml
//
// A .env file in the working directory is loaded first, and a handful of
// environment variables override the file: DATABASE_DRIVER, DATABASE_URL,
// SOCIALFEED_ADDR and JWT_SECRET.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvDatabaseDriver = "DATABASE_DRIVER"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvAddr           = "SOCIALFEED_ADDR"
	EnvJWTSecret      = "JWT_SECRET"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	loadDotEnv()

	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	loadDotEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// loadDotEnv loads ./.env without overriding variables already set.
// A missing file is normal outside development.
func loadDotEnv() {
	_ = godotenv.Load()
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:        ":8080",
			BaseURL:     "http://localhost:8080",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			Path:         "./socialfeed.db",
			MaxOpenConns: 25,
		},
		Pagination: PaginationConfig{
			DefaultPageNumber: 1,
			DefaultPageSize:   10,
		},
		Publication: PublicationConfig{
			MaxPosts:     10,
			CooldownDays: 7,
			BannedTerms:  []string{"Sex"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = def.Database.MaxOpenConns
	}
	if c.Pagination.DefaultPageNumber <= 0 {
		c.Pagination.DefaultPageNumber = def.Pagination.DefaultPageNumber
	}
	if c.Pagination.DefaultPageSize <= 0 {
		c.Pagination.DefaultPageSize = def.Pagination.DefaultPageSize
	}
	if c.Publication.MaxPosts <= 0 {
		c.Publication.MaxPosts = def.Publication.MaxPosts
	}
	if c.Publication.CooldownDays <= 0 {
		c.Publication.CooldownDays = def.Publication.CooldownDays
	}
	// nil means "not set"; an explicit empty list disables the content rule
	if c.Publication.BannedTerms == nil {
		c.Publication.BannedTerms = def.Publication.BannedTerms
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// applyEnv lets deployment environments override the file
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabaseDriver); v != "" {
		c.Database.Driver = Driver(strings.ToLower(v))
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Database.DSN = v
		if os.Getenv(EnvDatabaseDriver) == "" {
			c.Database.Driver = DriverPostgres
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.Secret = v
	}
}

// Validate rejects combinations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("invalid config: database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("invalid config: database.dsn (or %s) is required for the postgres driver", EnvDatabaseURL)
		}
	default:
		return fmt.Errorf("invalid config: unknown database driver %q", c.Database.Driver)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid config: unknown log format %q", c.Log.Format)
	}

	if c.Server.RequestsPerSecond < 0 || c.Server.Burst < 0 {
		return fmt.Errorf("invalid config: rate limit values must not be negative")
	}
	return nil
}

// AuthEnabled reports whether mutating routes require a bearer token
func (c *Config) AuthEnabled() bool {
	return c.Auth.Secret != ""
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s, Base URL: %s\n", c.Server.Addr, c.Server.BaseURL)
	switch c.Database.Driver {
	case DriverPostgres:
		summary += "Database: postgres\n"
	default:
		summary += fmt.Sprintf("Database: sqlite (%s)\n", c.Database.Path)
	}
	summary += fmt.Sprintf("Publication: max %d posts, %d day cooldown, %d banned terms\n",
		c.Publication.MaxPosts, c.Publication.CooldownDays, len(c.Publication.BannedTerms))
	summary += fmt.Sprintf("Auth: %t", c.AuthEnabled())
	return summary
}
