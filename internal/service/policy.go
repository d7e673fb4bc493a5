package service

import "time"

// PublicationPolicy parameterizes the InsertPost rules
type PublicationPolicy struct {
	// MaxPosts is the post count at which the cooldown rule stops applying
	MaxPosts int
	// CooldownDays is both the window length and the base of the wait message
	CooldownDays int
	// BannedTerms are matched as case-sensitive substrings of the description
	BannedTerms []string
}

// DefaultPublicationPolicy returns the stock rule thresholds
func DefaultPublicationPolicy() PublicationPolicy {
	return PublicationPolicy{
		MaxPosts:     10,
		CooldownDays: 7,
		BannedTerms:  []string{"Sex"},
	}
}

func (p PublicationPolicy) cooldown() time.Duration {
	return time.Duration(p.CooldownDays) * 24 * time.Hour
}

// PageDefaults replace zero page parameters
type PageDefaults struct {
	PageNumber int
	PageSize   int
}

// DefaultPageDefaults returns page 1 of 10 items
func DefaultPageDefaults() PageDefaults {
	return PageDefaults{PageNumber: 1, PageSize: 10}
}

func (d PageDefaults) resolve(pageNumber, pageSize int) (int, int) {
	if pageNumber == 0 {
		pageNumber = d.PageNumber
	}
	if pageSize == 0 {
		pageSize = d.PageSize
	}
	return pageNumber, pageSize
}
