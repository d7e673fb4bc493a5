package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"socialfeed/internal/service"
)

// RouterConfig carries everything NewRouter wires
type RouterConfig struct {
	Posts   *service.PostService
	Users   *service.UserService
	Events  http.Handler   // SSE endpoint; omitted when nil
	Auth    *Authenticator // nil disables bearer auth
	BaseURL string
	Log     logrus.FieldLogger
}

// NewRouter registers the API routes
func NewRouter(cfg RouterConfig) *http.ServeMux {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	posts := NewPostHandler(cfg.Posts, cfg.BaseURL, log)
	users := NewUserHandler(cfg.Users, cfg.BaseURL, log)
	auth := cfg.Auth

	mux := http.NewServeMux()

	// Post endpoints
	mux.HandleFunc("GET /api/posts", posts.ListPosts)
	mux.HandleFunc("POST /api/posts", auth.Require(posts.CreatePost))
	mux.HandleFunc("GET /api/posts/{id}", posts.GetPost)
	mux.HandleFunc("PUT /api/posts/{id}", auth.Require(posts.UpdatePost))
	mux.HandleFunc("DELETE /api/posts/{id}", auth.Require(posts.DeletePost))

	// Comment endpoints
	mux.HandleFunc("GET /api/posts/{id}/comments", posts.ListComments)
	mux.HandleFunc("POST /api/posts/{id}/comments", auth.Require(posts.CreateComment))

	// User endpoints
	mux.HandleFunc("GET /api/users", users.ListUsers)
	mux.HandleFunc("GET /api/users/{id}", users.GetUser)
	mux.HandleFunc("POST /api/users", auth.Require(users.CreateUser))

	// SSE events endpoint
	if cfg.Events != nil {
		mux.Handle("GET /events", cfg.Events)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	return mux
}
