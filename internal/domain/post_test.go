package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostQueryFilterMatches(t *testing.T) {
	created := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)
	post := &Post{ID: 1, UserID: 7, Description: "Sunset over the Harbor", CreatedAt: created}

	userID := int64(7)
	otherUser := int64(8)
	desc := "harbor"
	missing := "mountain"
	sameDay := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter PostQueryFilter
		want   bool
	}{
		{"empty filter", PostQueryFilter{}, true},
		{"matching user", PostQueryFilter{UserID: &userID}, true},
		{"other user", PostQueryFilter{UserID: &otherUser}, false},
		{"description is case-insensitive", PostQueryFilter{Description: &desc}, true},
		{"description absent", PostQueryFilter{Description: &missing}, false},
		{"same calendar date", PostQueryFilter{Date: &sameDay}, true},
		{"different date", PostQueryFilter{Date: &nextDay}, false},
		{"all predicates", PostQueryFilter{UserID: &userID, Description: &desc, Date: &sameDay}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(post))
		})
	}
}

func TestSameDate(t *testing.T) {
	utc := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	assert.True(t, SameDate(utc, time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)))
	// 2024-01-02 00:30 at UTC+2 is still 2024-01-01 in UTC
	assert.True(t, SameDate(utc, time.Date(2024, 1, 2, 0, 30, 0, 0, plusTwo)))
	assert.False(t, SameDate(utc, time.Date(2024, 1, 2, 3, 0, 0, 0, plusTwo)))
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).FullName())
}
