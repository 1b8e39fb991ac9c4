package server

import (
	"net/http"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/amolina-dev/postapi/internal/config"
	"github.com/amolina-dev/postapi/internal/handlers"
	"github.com/amolina-dev/postapi/internal/utils"
)

type Server struct {
	cfg     *config.Config
	log     *logrus.Logger
	handler *handlers.Handler
	auth    func(http.Handler) http.Handler
}

func New(cfg *config.Config, log *logrus.Logger, h *handlers.Handler, auth func(http.Handler) http.Handler) *Server {
	return &Server{cfg: cfg, log: log, handler: h, auth: auth}
}

// Router builds the full route tree. Post routes and logout sit behind the
// auth middleware; registration and login are public.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(logger.Logger("router", s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	r.Post("/users", s.handler.Auth.Register)
	r.Post("/login", s.handler.Auth.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(s.auth)

		r.Post("/logout", s.handler.Auth.Logout)

		r.Get("/posts", s.handler.Posts.ListPosts)
		r.Post("/posts", s.handler.Posts.CreatePost)
		r.Get("/posts/{id}", s.handler.Posts.GetPostByID)
		r.Put("/posts/{id}", s.handler.Posts.UpdatePost)
		r.Delete("/posts/{id}", s.handler.Posts.DeletePost)
	})

	return r
}
