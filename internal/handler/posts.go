package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/domain"
	"socialfeed/internal/pagination"
	"socialfeed/internal/service"
)

// PostHandler handles post API requests
type PostHandler struct {
	svc      *service.PostService
	validate *requestValidator
	links    pageLinks
	log      logrus.FieldLogger
}

// NewPostHandler creates a new post handler. baseURL prefixes pagination links.
func NewPostHandler(svc *service.PostService, baseURL string, log logrus.FieldLogger) *PostHandler {
	return &PostHandler{
		svc:      svc,
		validate: newRequestValidator(time.Now),
		links:    pageLinks{baseURL: strings.TrimRight(baseURL, "/")},
		log:      log.WithField("handler", "posts"),
	}
}

// ListPosts returns one filtered page of posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePostFilter(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	page, err := h.svc.GetPosts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	out := pagination.Map(page, toPostResponse)
	h.links.writePage(w, r, out.Items, out.Metadata)
}

// GetPost returns a single post
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	post, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: toPostResponse(post)}, http.StatusOK)
}

// CreatePost validates the payload and runs it through the publication rules
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if req.UserID == 0 {
		if id, ok := UserIDFromContext(r.Context()); ok {
			req.UserID = id
		}
	}
	if err := h.validate.Struct(req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	post, err := h.svc.InsertPost(r.Context(), domain.NewPost(req.UserID, req.Description, req.Image))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: toPostResponse(post)}, http.StatusCreated)
}

// UpdatePost replaces a post's description and image
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	var req UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	ok, err := h.svc.UpdatePost(r.Context(), &domain.Post{ID: id, Description: req.Description, Image: req.Image})
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: ok}, http.StatusOK)
}

// DeletePost removes a post
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	ok, err := h.svc.DeletePost(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: ok}, http.StatusOK)
}

// ListComments returns one page of a post's comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	pageNumber, pageSize, err := parsePage(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	page, err := h.svc.GetComments(r.Context(), id, pageNumber, pageSize)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	h.links.writePage(w, r, page.Items, page.Metadata)
}

// CreateComment attaches a comment to a post
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	var req CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if req.UserID == 0 {
		if uid, ok := UserIDFromContext(r.Context()); ok {
			req.UserID = uid
		}
	}
	if err := h.validate.Struct(req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), &domain.Comment{PostID: id, UserID: req.UserID, Description: req.Description})
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: comment}, http.StatusCreated)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}

func parsePage(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	pageNumber, err := queryInt(q.Get("pageNumber"), "pageNumber")
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := queryInt(q.Get("pageSize"), "pageSize")
	if err != nil {
		return 0, 0, err
	}
	return pageNumber, pageSize, nil
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &domain.ValidationError{Field: field, Message: "must be a positive integer"}
	}
	return n, nil
}

func parsePostFilter(r *http.Request) (domain.PostQueryFilter, error) {
	var filter domain.PostQueryFilter
	q := r.URL.Query()

	pageNumber, pageSize, err := parsePage(r)
	if err != nil {
		return filter, err
	}
	filter.PageNumber = pageNumber
	filter.PageSize = pageSize

	if raw := q.Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, &domain.ValidationError{Field: "userId", Message: "must be an integer"}
		}
		filter.UserID = &id
	}
	if desc := q.Get("description"); desc != "" {
		filter.Description = &desc
	}
	if raw := q.Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, &domain.ValidationError{Field: "date", Message: "must be a date in 2006-01-02 format"}
		}
		filter.Date = &date
	}

	return filter, nil
}
