package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/service"
)

// UserHandler handles user API requests
type UserHandler struct {
	svc      *service.UserService
	validate *requestValidator
	links    pageLinks
	log      logrus.FieldLogger
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.UserService, baseURL string, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		svc:      svc,
		validate: newRequestValidator(time.Now),
		links:    pageLinks{baseURL: strings.TrimRight(baseURL, "/")},
		log:      log.WithField("handler", "users"),
	}
}

// ListUsers returns one page of users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	pageNumber, pageSize, err := parsePage(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	page, err := h.svc.ListUsers(r.Context(), pageNumber, pageSize)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	h.links.writePage(w, r, page.Items, page.Metadata)
}

// GetUser returns a single user
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: user}, http.StatusOK)
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, Response{Data: user}, http.StatusCreated)
}
