// Package api serves diagrams over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/diagrams             graph document → diagram JSON
//	POST   /v1/render               graph document → rendered artifact
//	GET    /v1/graphs               list stored graphs
//	POST   /v1/graphs               store a graph
//	GET    /v1/graphs/{id}          fetch a stored graph
//	PUT    /v1/graphs/{id}          replace title, description or graph
//	DELETE /v1/graphs/{id}
//	GET    /v1/graphs/{id}/diagram  diagram JSON for a stored graph
//	GET    /v1/graphs/{id}/render   rendered artifact (?format=svg)
//	POST   /v1/graphs/{id}/render   rendered artifact with full options
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/syntower/pkg/buildinfo"
	"github.com/matzehuels/syntower/pkg/pipeline"
	"github.com/matzehuels/syntower/pkg/source/remote"
	"github.com/matzehuels/syntower/pkg/store"
)

// DefaultMaxBody caps request bodies.
const DefaultMaxBody = 32 << 20

// DefaultTimeout bounds a single request.
const DefaultTimeout = 60 * time.Second

// Server holds the dependencies shared by all handlers.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Remote *remote.Source
	Logger *log.Logger

	MaxBody int64
	Timeout time.Duration
}

// NewServer creates a server. A nil store uses an in-memory store and a nil
// remote source disables fetching graphs by URL.
func NewServer(runner *pipeline.Runner, st store.Store, src *remote.Source, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Runner:  runner,
		Store:   st,
		Remote:  src,
		Logger:  logger,
		MaxBody: DefaultMaxBody,
		Timeout: DefaultTimeout,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.Timeout))

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/diagrams", s.createDiagram)
		r.Post("/render", s.render)

		r.Route("/graphs", func(r chi.Router) {
			r.Get("/", s.listGraphs)
			r.Post("/", s.createGraph)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getGraph)
				r.Put("/", s.updateGraph)
				r.Delete("/", s.deleteGraph)
				r.Get("/diagram", s.graphDiagram)
				r.Get("/render", s.renderGraph)
				r.Post("/render", s.renderGraph)
			})
		})
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
