// Package web provides the HTTP server and JSON handlers for the listings API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/listings/internal/logging"
	"github.com/evcraddock/listings/internal/property"
	"github.com/evcraddock/listings/internal/validation"
)

// Store is the property storage the handlers depend on.
type Store interface {
	Create(np property.NewProperty) property.Property
	List(opts property.ListOptions) property.ListResult
	GetByID(id int64) (property.Property, bool)
	Update(id int64, patch property.Patch) (property.Property, bool)
	Delete(id int64) bool
	Len() int
}

// Options configures a Server.
type Options struct {
	// RateLimit is the sustained number of API requests allowed per
	// second across all clients. Zero disables throttling.
	RateLimit float64
	// RateBurst is the largest burst allowed when RateLimit is set.
	RateBurst int
}

// Server is the listings HTTP server.
type Server struct {
	store   Store
	mux     *http.ServeMux
	handler http.Handler
}

// routePrefixes are the mount points of the property API.
var routePrefixes = []string{"/api/properties", "/properties"}

// NewServer creates a server backed by the given store.
func NewServer(store Store, opts Options) *Server {
	s := &Server{
		store: store,
		mux:   http.NewServeMux(),
	}

	for _, prefix := range routePrefixes {
		s.mux.Handle("POST "+prefix,
			validateBody(validation.PropertyCreate, s.guard("create property", s.handleCreate)))
		s.mux.Handle("GET "+prefix,
			validateQuery(validation.PropertyQuery, s.guard("retrieve properties", s.handleList)))
		s.mux.Handle("GET "+prefix+"/{id}", s.guard("retrieve property", s.handleGet))
		s.mux.Handle("PUT "+prefix+"/{id}",
			validateBody(validation.PropertyUpdate, s.guard("update property", s.handleUpdate)))
		s.mux.Handle("DELETE "+prefix+"/{id}", s.guard("delete property", s.handleDelete))
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)

	var h http.Handler = s.mux
	if opts.RateLimit > 0 {
		h = rateLimit(opts.RateLimit, opts.RateBurst, h)
	}
	s.handler = logging.RequestID(logging.RequestLogger(h))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server and blocks until ctx is done or
// the listener fails. In-flight requests get a few seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting listings API", "addr", "http://localhost"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down listings API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// handleHealth reports liveness and the number of stored listings.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]any{"status": "ok", "properties": s.store.Len()}, http.StatusOK)
}
