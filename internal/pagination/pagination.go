// Package pagination slices an ordered sequence into pages and reports
// navigation metadata. It has no knowledge of storage or configuration:
// callers substitute their own defaults before calling Paginate.
package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for a non-positive page number or size
var ErrInvalidArgument = errors.New("invalid pagination argument")

// Metadata describes where a page sits within the full sequence
type Metadata struct {
	TotalCount      int  `json:"totalCount"`
	PageSize        int  `json:"pageSize"`
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// PagedList is one page of an ordered sequence
type PagedList[T any] struct {
	Items []T
	Metadata
}

// Paginate returns page pageNumber (1-based) of source.
//
// A page past the end yields an empty Items slice; the metadata is still
// computed against the full count.
func Paginate[T any](source []T, pageNumber, pageSize int) (*PagedList[T], error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("%w: page number %d must be at least 1", ErrInvalidArgument, pageNumber)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size %d must be at least 1", ErrInvalidArgument, pageSize)
	}

	total := len(source)
	totalPages := (total + pageSize - 1) / pageSize

	items := []T{}
	// Compare against the page count rather than multiplying, so huge page
	// numbers cannot overflow the offset.
	if pageNumber <= totalPages {
		start := (pageNumber - 1) * pageSize
		end := min(start+pageSize, total)
		items = append(items, source[start:end]...)
	}

	return &PagedList[T]{
		Items: items,
		Metadata: Metadata{
			TotalCount:      total,
			PageSize:        pageSize,
			CurrentPage:     pageNumber,
			TotalPages:      totalPages,
			HasNextPage:     pageNumber < totalPages,
			HasPreviousPage: pageNumber > 1,
		},
	}, nil
}

// Map projects the items of a page, keeping its metadata
func Map[T, U any](page *PagedList[T], fn func(T) U) *PagedList[U] {
	items := make([]U, len(page.Items))
	for i, item := range page.Items {
		items[i] = fn(item)
	}
	return &PagedList[U]{Items: items, Metadata: page.Metadata}
}
