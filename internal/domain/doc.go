// Package domain defines the core types of the socialfeed backend.
//
// This package holds the entities persisted by the repositories and the
// error taxonomy shared by every layer above them.
//
// # Core Types
//
// Post is a feed entry written by a User. Its identifier is assigned by the
// store and its creation time by the publication rules, never by the client.
//
// User is a feed member. Posts and comments reference users by identifier.
//
// Comment is a reply attached to a post and is removed with it.
//
// PostQueryFilter carries the optional predicates of a post listing plus the
// requested page.
//
// # Errors
//
// ValidationError, RuleViolationError, NotFoundError and StorageError classify
// every failure the core can report. Validation and rule violations are
// expected outcomes; storage errors are faults that callers may retry as a
// whole request.
//
// # Design Principles
//
// - No database or external dependencies
// - Column bounds are declared once here and reused by stores and validators
package domain
