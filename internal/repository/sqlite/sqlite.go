package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/domain"
	"socialfeed/internal/repository"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - empty database
// 1 - users, posts, comments
const currentSchemaVersion = 1

// Store implements repository.Store using SQLite
type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
}

var _ repository.Store = (*Store)(nil)

// Open creates or opens a SQLite database at the given path and migrates it.
//
// The pool is limited to a single connection: SQLite has one writer at a
// time, and an in-memory database only lives as long as its connection.
// A unit of work therefore holds the connection until it commits or rolls
// back, which serializes writers.
func Open(path string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	s := &Store{db: db, log: log.WithField("store", "sqlite")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s.log.WithField("path", path).Debug("sqlite store opened")
	return s, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// migrate applies the schema when the database is older than currentSchemaVersion
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version >= currentSchemaVersion {
		return nil
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"from": version,
		"to":   currentSchemaVersion,
	}).Info("sqlite schema migrated")
	return nil
}

// Begin starts a unit of work. The caller must Commit or Rollback it.
func (s *Store) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageError("begin transaction", err)
	}
	return newUnitOfWork(tx, s.log), nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
