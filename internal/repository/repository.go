package repository

import (
	"context"

	"socialfeed/internal/domain"
)

// PostRepository gives access to posts inside one unit of work
type PostRepository interface {
	// GetAll returns every post ordered by ID ascending
	GetAll(ctx context.Context) ([]*domain.Post, error)
	// GetByUser returns an author's posts ordered by creation time ascending
	GetByUser(ctx context.Context, userID int64) ([]*domain.Post, error)
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// Add inserts the post and sets its ID
	Add(ctx context.Context, post *domain.Post) error
	// Update replaces the stored record with the same ID
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository gives access to users inside one unit of work
type UserRepository interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Add(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository gives access to comments inside one unit of work
type CommentRepository interface {
	GetAll(ctx context.Context) ([]*domain.Comment, error)
	// GetByPost returns a post's comments ordered by ID ascending
	GetByPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Add(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
}

// UnitOfWork groups the repositories of one request behind a single
// transaction. Nothing staged through them is visible to other units of
// work until Commit succeeds.
type UnitOfWork interface {
	Posts() PostRepository
	Users() UserRepository
	Comments() CommentRepository

	// Commit makes every staged mutation durable, or none of them
	Commit(ctx context.Context) error
	// Rollback discards staged mutations and releases the transaction.
	// It is safe to defer; after Commit it does nothing.
	Rollback() error
}

// Store opens units of work against a backing store
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)

	// Close releases resources
	Close() error
}
