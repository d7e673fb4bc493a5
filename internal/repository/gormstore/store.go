// Package gormstore implements repository.Store on gorm. Production
// deployments point it at Postgres; any gorm dialector works.
package gormstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"socialfeed/internal/domain"
	"socialfeed/internal/repository"
)

// Options tunes the connection pool
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          logrus.FieldLogger
}

// Store implements repository.Store using gorm
type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

var _ repository.Store = (*Store)(nil)

// OpenPostgres connects to Postgres with the given DSN
func OpenPostgres(dsn string, opts Options) (*Store, error) {
	return Open(postgres.Open(dsn), opts)
}

// Open connects through any gorm dialector, migrates the schema and tunes the pool
func Open(dialector gorm.Dialector, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	log = log.WithField("store", "gorm")

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(log),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&userModel{}, &postModel{}, &commentModel{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("gorm schema migrated")

	return &Store{db: db, log: log}, nil
}

// Begin starts a unit of work. The caller must Commit or Rollback it.
func (s *Store) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, domain.NewStorageError("begin transaction", tx.Error)
	}
	return newUnitOfWork(tx, s.log), nil
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
