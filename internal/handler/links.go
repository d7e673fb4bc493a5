package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"socialfeed/internal/pagination"
)

// PageMeta is pagination metadata plus navigation links
type PageMeta struct {
	pagination.Metadata
	NextPageURL     string `json:"nextPageUrl,omitempty"`
	PreviousPageURL string `json:"previousPageUrl,omitempty"`
}

// pageLinks builds page URLs against the public base URL
type pageLinks struct {
	baseURL string
}

// pageURL returns the request's own URL with pageNumber replaced
func (l pageLinks) pageURL(r *http.Request, pageNumber, pageSize int) string {
	q := url.Values{}
	for k, v := range r.URL.Query() {
		q[k] = v
	}
	q.Set("pageNumber", strconv.Itoa(pageNumber))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return l.baseURL + r.URL.Path + "?" + q.Encode()
}

func (l pageLinks) meta(r *http.Request, md pagination.Metadata) PageMeta {
	meta := PageMeta{Metadata: md}
	if md.HasNextPage {
		meta.NextPageURL = l.pageURL(r, md.CurrentPage+1, md.PageSize)
	}
	// past the end, previous points at the last page that exists
	if prev := min(md.CurrentPage-1, md.TotalPages); md.HasPreviousPage && prev >= 1 {
		meta.PreviousPageURL = l.pageURL(r, prev, md.PageSize)
	}
	return meta
}

// writePage writes a paged listing with the X-Pagination header
func (l pageLinks) writePage(w http.ResponseWriter, r *http.Request, items interface{}, md pagination.Metadata) {
	meta := l.meta(r, md)
	if header, err := json.Marshal(meta); err == nil {
		w.Header().Set("X-Pagination", string(header))
	}
	writeJSON(w, PagedResponse{Data: items, Meta: meta}, http.StatusOK)
}
