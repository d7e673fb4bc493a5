package handler

import (
	"time"

	"socialfeed/internal/domain"
)

// PostRequest is the body of POST /api/posts
type PostRequest struct {
	UserID      int64      `json:"userId" validate:"gt=0"`
	Description string     `json:"description" validate:"required,min=10,max=1000"`
	Image       string     `json:"image" validate:"omitempty,max=500"`
	Date        *time.Time `json:"date" validate:"omitempty,notfuture"`
}

// UpdatePostRequest is the body of PUT /api/posts/{id}. Author and date are fixed at creation.
type UpdatePostRequest struct {
	Description string `json:"description" validate:"required,min=10,max=1000"`
	Image       string `json:"image" validate:"omitempty,max=500"`
}

// PostResponse is a post as returned by the API
type PostResponse struct {
	PostID      int64     `json:"postId"`
	UserID      int64     `json:"userId"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Date        time.Time `json:"date"`
}

func toPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		PostID:      p.ID,
		UserID:      p.UserID,
		Description: p.Description,
		Image:       p.Image,
		Date:        p.CreatedAt,
	}
}

// CommentRequest is the body of POST /api/posts/{id}/comments
type CommentRequest struct {
	UserID      int64  `json:"userId" validate:"gt=0"`
	Description string `json:"description" validate:"required,max=500"`
}

// UserRequest is the body of POST /api/users
type UserRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=30"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Telephone   string `json:"telephone" validate:"omitempty,numeric,max=10"`
	IsActive    *bool  `json:"isActive"`
}

func (u UserRequest) toDomain() *domain.User {
	user := &domain.User{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Telephone: u.Telephone,
		IsActive:  true,
	}
	if u.DateOfBirth != "" {
		// Format already checked by the datetime tag
		user.DateOfBirth, _ = time.Parse(dateLayout, u.DateOfBirth)
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
	return user
}
