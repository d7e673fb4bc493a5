package domain

import (
	"strings"
	"time"
)

// Column bounds shared by the stores and the API boundary.
const (
	PostDescriptionMaxLen = 1000
	PostDescriptionMinLen = 10
	PostImageMaxLen       = 500
)

// Post is a published entry in the feed
type Post struct {
	ID          int64     `json:"postId"`
	UserID      int64     `json:"userId"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"date"`
}

// NewPost creates an unsaved post for the given author
func NewPost(userID int64, description, image string) *Post {
	return &Post{
		UserID:      userID,
		Description: description,
		Image:       image,
	}
}

// PostQueryFilter narrows a post listing. Zero page values mean "use the configured default".
type PostQueryFilter struct {
	UserID      *int64
	Description *string
	Date        *time.Time
	PageNumber  int
	PageSize    int
}

// Matches reports whether the post satisfies every filter that is set
func (f PostQueryFilter) Matches(p *Post) bool {
	if f.UserID != nil && p.UserID != *f.UserID {
		return false
	}
	if f.Description != nil &&
		!strings.Contains(strings.ToLower(p.Description), strings.ToLower(*f.Description)) {
		return false
	}
	if f.Date != nil && !SameDate(p.CreatedAt, *f.Date) {
		return false
	}
	return true
}

// SameDate compares the calendar date of a and b in a's location
func SameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
