package gormstore

import (
	"time"

	"socialfeed/internal/domain"
)

type userModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	FirstName   string     `gorm:"type:varchar(50);not null"`
	LastName    string     `gorm:"type:varchar(50);not null"`
	Email       string     `gorm:"type:varchar(30);not null"`
	DateOfBirth *time.Time `gorm:"type:date"`
	Telephone   *string    `gorm:"type:varchar(10)"`
	IsActive    bool       `gorm:"not null"`

	Posts []postModel `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

func (userModel) TableName() string { return "users" }

type postModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"not null;index:idx_posts_user_created,priority:1"`
	Description string    `gorm:"type:varchar(1000);not null"`
	Image       *string   `gorm:"type:varchar(500)"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false;index:idx_posts_user_created,priority:2"`

	Comments []commentModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (postModel) TableName() string { return "posts" }

type commentModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PostID      int64     `gorm:"not null;index"`
	UserID      int64     `gorm:"not null"`
	Description string    `gorm:"type:varchar(500);not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	IsActive    bool      `gorm:"not null"`
}

func (commentModel) TableName() string { return "comments" }

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func derefDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: optionalDate(u.DateOfBirth),
		Telephone:   optionalString(u.Telephone),
		IsActive:    u.IsActive,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		DateOfBirth: derefDate(m.DateOfBirth),
		Telephone:   derefString(m.Telephone),
		IsActive:    m.IsActive,
	}
}

func toPostModel(p *domain.Post) postModel {
	return postModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Description: p.Description,
		Image:       optionalString(p.Image),
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func (m postModel) toDomain() *domain.Post {
	return &domain.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Image:       derefString(m.Image),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func toCommentModel(c *domain.Comment) commentModel {
	return commentModel{
		ID:          c.ID,
		PostID:      c.PostID,
		UserID:      c.UserID,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UTC(),
		IsActive:    c.IsActive,
	}
}

func (m commentModel) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:          m.ID,
		PostID:      m.PostID,
		UserID:      m.UserID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		IsActive:    m.IsActive,
	}
}
