package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version     int               `yaml:"version"`
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Publication PublicationConfig `yaml:"publication"`
	Auth        AuthConfig        `yaml:"auth"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	BaseURL     string   `yaml:"base_url"` // public URL used for page links
	CORSOrigins []string `yaml:"cors_origins,omitempty"`

	// Per-client throttling; zero disables it
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	ShutdownTimeout *Duration `yaml:"shutdown_timeout,omitempty"`
}

// Driver selects the repository adapter
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Driver          Driver    `yaml:"driver"`
	Path            string    `yaml:"path"` // sqlite file
	DSN             string    `yaml:"dsn,omitempty"`
	MaxOpenConns    int       `yaml:"max_open_conns"`
	ConnMaxLifetime *Duration `yaml:"conn_max_lifetime,omitempty"`
}

// PaginationConfig holds the defaults substituted for missing page parameters
type PaginationConfig struct {
	DefaultPageNumber int `yaml:"default_page_number"`
	DefaultPageSize   int `yaml:"default_page_size"`
}

// PublicationConfig parameterizes the post publication rules
type PublicationConfig struct {
	MaxPosts     int      `yaml:"max_posts"`
	CooldownDays int      `yaml:"cooldown_days"`
	BannedTerms  []string `yaml:"banned_terms"`
}

// AuthConfig enables bearer-token identity when Secret is set
type AuthConfig struct {
	Secret   string `yaml:"secret,omitempty"`
	Issuer   string `yaml:"issuer,omitempty"`
	Audience string `yaml:"audience,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Or returns the underlying time.Duration, or def when unset
func (d *Duration) Or(def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return time.Duration(*d)
}
