package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/config"
	"socialfeed/internal/repository"
	"socialfeed/internal/repository/gormstore"
	"socialfeed/internal/repository/sqlite"
	"socialfeed/internal/service"
)

// loadConfig reads the explicit --config file, or searches the default locations
func loadConfig(opts *RootOptions) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		return config.LoadFromPath(opts.ConfigPath)
	}
	return config.Load()
}

// newLogger builds the process logger from config. --verbose forces debug.
func newLogger(cfg config.LogConfig, verbose bool, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// openStore opens the configured repository adapter; both migrate on open
func openStore(cfg config.DatabaseConfig, log logrus.FieldLogger) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return gormstore.OpenPostgres(cfg.DSN, gormstore.Options{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime.Or(time.Hour),
			Logger:          log,
		})
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path, log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// environment is what every command needs after startup
type environment struct {
	cfg   *config.Config
	log   *logrus.Logger
	store repository.Store
}

func setup(opts *RootOptions) (*environment, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.Log, opts.Verbose, os.Stderr)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.WithField("path", path).Debug("config loaded")
	} else {
		log.Debug("no config file found, using defaults")
	}

	store, err := openStore(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, log: log, store: store}, nil
}

func (e *environment) Close() error {
	return e.store.Close()
}

func publicationPolicy(cfg config.PublicationConfig) service.PublicationPolicy {
	return service.PublicationPolicy{
		MaxPosts:     cfg.MaxPosts,
		CooldownDays: cfg.CooldownDays,
		BannedTerms:  cfg.BannedTerms,
	}
}

func pageDefaults(cfg config.PaginationConfig) service.PageDefaults {
	return service.PageDefaults{
		PageNumber: cfg.DefaultPageNumber,
		PageSize:   cfg.DefaultPageSize,
	}
}
