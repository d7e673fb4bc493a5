package domain

import "time"

// Column bounds for users.
const (
	UserNameMaxLen      = 50
	UserEmailMaxLen     = 30
	UserTelephoneMaxLen = 10
)

// User is a feed member. Posts reference users by ID.
type User struct {
	ID          int64     `json:"userId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Telephone   string    `json:"telephone,omitempty"`
	IsActive    bool      `json:"isActive"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
