package service

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/codec"
	"socialfeed/internal/domain"
	"socialfeed/internal/repository"
)

// ExportSnapshot reads every record inside one unit of work
func ExportSnapshot(ctx context.Context, store repository.Store) (*codec.Snapshot, error) {
	uow, err := store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	users, err := uow.Users().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := uow.Posts().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := uow.Comments().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &codec.Snapshot{
		ExportedAt: time.Now().UTC(),
		Users:      users,
		Posts:      posts,
		Comments:   comments,
	}
	if snap.Users == nil {
		snap.Users = []*domain.User{}
	}
	if snap.Posts == nil {
		snap.Posts = []*domain.Post{}
	}
	if snap.Comments == nil {
		snap.Comments = []*domain.Comment{}
	}
	return snap, nil
}

// ImportStats counts the records written by ImportSnapshot
type ImportStats struct {
	Users    int
	Posts    int
	Comments int
}

// ImportSnapshot loads fixture data. Records get fresh identifiers and
// references are remapped; publication rules are not applied. Everything is
// written in one unit of work, so a bad reference leaves the store untouched
// and the returned stats are zero.
func ImportSnapshot(ctx context.Context, store repository.Store, snap *codec.Snapshot) (ImportStats, error) {
	var stats ImportStats

	uow, err := store.Begin(ctx)
	if err != nil {
		return ImportStats{}, err
	}
	defer uow.Rollback()

	userIDs := make(map[int64]int64, len(snap.Users))
	for _, u := range snap.Users {
		user := *u
		user.ID = 0
		if err := uow.Users().Add(ctx, &user); err != nil {
			return ImportStats{}, err
		}
		userIDs[u.ID] = user.ID
		stats.Users++
	}

	postIDs := make(map[int64]int64, len(snap.Posts))
	for _, p := range snap.Posts {
		post := *p
		post.ID = 0
		newUser, ok := userIDs[p.UserID]
		if !ok {
			return ImportStats{}, &domain.ValidationError{Field: "posts", Message: fmt.Sprintf("post %d references unknown user %d", p.ID, p.UserID)}
		}
		post.UserID = newUser
		if err := uow.Posts().Add(ctx, &post); err != nil {
			return ImportStats{}, err
		}
		postIDs[p.ID] = post.ID
		stats.Posts++
	}

	for _, c := range snap.Comments {
		comment := *c
		comment.ID = 0
		newPost, ok := postIDs[c.PostID]
		if !ok {
			return ImportStats{}, &domain.ValidationError{Field: "comments", Message: fmt.Sprintf("comment %d references unknown post %d", c.ID, c.PostID)}
		}
		newUser, ok := userIDs[c.UserID]
		if !ok {
			return ImportStats{}, &domain.ValidationError{Field: "comments", Message: fmt.Sprintf("comment %d references unknown user %d", c.ID, c.UserID)}
		}
		comment.PostID = newPost
		comment.UserID = newUser
		if err := uow.Comments().Add(ctx, &comment); err != nil {
			return ImportStats{}, err
		}
		stats.Comments++
	}

	if err := uow.Commit(ctx); err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}
