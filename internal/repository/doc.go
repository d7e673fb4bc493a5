// Package repository defines the data access interfaces for socialfeed.
//
// This package provides the repository abstraction layer for persisting
// and retrieving domain entities. Concrete stores live in the sqlite and
// gormstore subpackages.
//
// # Unit of Work
//
// A Store hands out one UnitOfWork per request. The unit of work owns one
// repository per entity type, all sharing a single transaction, and a
// Commit that makes every staged mutation durable at once. Reads made
// through the repositories observe the writes staged earlier in the same
// unit of work, never the uncommitted writes of another.
//
// Callers must defer Rollback right after Begin so the transaction is
// released on every path, including rejections and failures.
//
// # Conventions
//
// - GetByID, Update and Delete report a missing record as *domain.NotFoundError
// - Delete of an absent record is NotFound, not a silent success
// - Add assigns the identifier before returning
// - Backing-store failures are reported as *domain.StorageError
//
// # Stores
//
// The sqlite store runs on modernc.org/sqlite through database/sql and is
// the default for single-node deployments. The gormstore store runs on gorm
// with the Postgres driver.
package repository
