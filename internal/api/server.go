// Package api exposes the gallery over HTTP: the versioned JSON API the web
// client talks to, the image byte endpoints, and the public share surface.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/campusfest/memories/internal/auth"
	"github.com/campusfest/memories/internal/config"
	"github.com/campusfest/memories/internal/ops"
)

// Server is the HTTP front of the gallery.
type Server struct {
	gallery *ops.Gallery
	auth    *auth.Service
	cfg     *config.Config
	router  *chi.Mux
}

// NewServer builds the router with its middleware and routes.
func NewServer(gallery *ops.Gallery, authSvc *auth.Service, cfg *config.Config) *Server {
	s := &Server{
		gallery: gallery,
		auth:    authSvc,
		cfg:     cfg,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(s.loggingMiddleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignUp)
			r.Post("/signin", s.handleSignIn)
			r.Post("/signout", s.handleSignOut)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/me", s.handleProfile)
			r.Patch("/me", s.handleUpdateProfile)
			r.Get("/saved", s.handleSaved)
		})

		r.Route("/moments", func(r chi.Router) {
			r.With(s.optionalSession).Get("/", s.handleList)
			r.With(s.optionalSession).Get("/{id}", s.handleFetch)
			r.Get("/{id}/image", s.handleImage)
			r.Get("/{id}/thumbnail", s.handleThumbnail)

			r.Group(func(r chi.Router) {
				r.Use(s.requireSession)
				r.Post("/", s.handleUpload)
				r.Patch("/{id}", s.handleUpdate)
				r.Delete("/{id}", s.handleDelete)
				r.Post("/{id}/like", s.handleToggleLike)
				r.Post("/{id}/bookmark", s.handleToggleBookmark)
				r.Post("/{id}/comments", s.handleAddComment)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Delete("/comments/{id}", s.handleDeleteComment)
			r.Post("/comments/{id}/like", s.handleToggleCommentLike)
			r.Post("/reports", s.handleReport)
		})
	})

	// Public share surface. Unresolvable ids bounce to the collection page
	// instead of erroring.
	router.With(s.optionalSession).Get("/golden-moment/{id}", s.handleShared)

	s.router = router
	return s
}

// Handler returns the root http.Handler, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and shuts it down gracefully on
// SIGINT/SIGTERM.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Infof("[api] listening on http://%s", srv.Addr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case sig := <-sigCh:
		log.Infof("[api] received %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
