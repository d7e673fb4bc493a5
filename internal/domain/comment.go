package domain

import "time"

// CommentDescriptionMaxLen bounds the comment body column.
const CommentDescriptionMaxLen = 500

// Comment is a reply attached to a post
type Comment struct {
	ID          int64     `json:"commentId"`
	PostID      int64     `json:"postId"`
	UserID      int64     `json:"userId"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"date"`
	IsActive    bool      `json:"isActive"`
}
