// Package web serves the catalog as a JSON HTTP API.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	requestTimeout = 60 * time.Second
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr string
	// Ready reports whether the upstream client is initialized.
	// Nil means always ready.
	Ready func() bool
}

// Server is the HTTP server for the catalog API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig, catalog Catalog) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	ready := cfg.Ready
	if ready == nil {
		ready = func() bool { return true }
	}

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: NewHandlers(catalog, ready),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(requestTimeout))
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Get("/health", h.Health)
	s.router.Get("/search", h.Search)
	s.router.Get("/suggestions", h.Suggestions)
	s.router.Get("/home", h.Home)

	s.router.Route("/songs/{id}", func(r chi.Router) {
		r.Get("/", h.Song)
		r.Get("/lyrics", h.Lyrics)
	})
	s.router.Get("/videos/{id}", h.Video)

	s.router.Route("/artists/{id}", func(r chi.Router) {
		r.Get("/", h.Artist)
		r.Get("/songs", h.ArtistSongs)
		r.Get("/albums", h.ArtistAlbums)
	})
	s.router.Get("/albums/{id}", h.Album)

	s.router.Route("/playlists/{id}", func(r chi.Router) {
		r.Get("/", h.Playlist)
		r.Get("/videos", h.PlaylistVideos)
		r.Get("/groups", h.PlaylistGroups)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("Shutting down server...")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
