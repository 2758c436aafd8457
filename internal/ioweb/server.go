// Package ioweb serves the card lab over a REST/JSON API for the
// browser editor.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize limits JSON request bodies.
const maxBodySize = 1 << 20

// Server is the HTTP API of the card lab.
type Server struct {
	lab    lab.Lab
	cfg    config.ServerConfig
	router chi.Router
}

// New creates a Server for l.
func New(l lab.Lab, cfg config.ServerConfig) *Server {
	s := &Server{lab: l, cfg: cfg}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr is the listen address from the configuration.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// ListenAndServe runs the API until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ListenError(srv.Addr, err)
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.cfg.AllowedOrigins))
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(time.Duration(s.cfg.RequestTimeout) * time.Second))
	}

	r.Get("/health", s.handleHealth)

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", s.handleCardList)
		r.Post("/", s.handleCardCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleCardGet)
			r.Put("/", s.handleCardUpdate)
			r.Delete("/", s.handleCardDelete)
			r.Get("/versions", s.handleCardVersions)
			r.Get("/versions/{version}", s.handleCardVersion)
			r.Post("/versions/{version}/restore", s.handleCardRestore)
		})
	})

	r.Route("/passives", func(r chi.Router) {
		r.Get("/", s.handlePassiveList)
		r.Post("/", s.handlePassiveCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handlePassiveGet)
			r.Put("/", s.handlePassiveUpdate)
			r.Delete("/", s.handlePassiveDelete)
			r.Get("/versions", s.handlePassiveVersions)
			r.Get("/versions/{version}", s.handlePassiveVersion)
			r.Post("/versions/{version}/restore", s.handlePassiveRestore)
		})
	})

	r.Route("/keyword-abilities", func(r chi.Router) {
		r.Get("/", s.handleAbilityList)
		r.Post("/", s.handleAbilityCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleAbilityGet)
			r.Put("/", s.handleAbilityUpdate)
			r.Delete("/", s.handleAbilityDelete)
			r.Get("/versions", s.handleAbilityVersions)
			r.Get("/versions/{version}", s.handleAbilityVersion)
			r.Post("/versions/{version}/restore", s.handleAbilityRestore)
		})
	})

	r.Route("/pantheons", s.registryRouter(registryPantheon))
	r.Route("/archetypes", s.registryRouter(registryArchetype))
	r.Route("/tags", s.registryRouter(registryTag))
	r.Route("/ability-timings", s.registryRouter(registryAbilityTiming))

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", s.handleLocationList)
		r.Post("/", s.handleLocationCreate)
		r.Get("/metadata/summary", s.handleLocationSummary)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleLocationGet)
			r.Put("/", s.handleLocationUpdate)
			r.Delete("/", s.handleLocationDelete)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
