package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/syntower/pkg/cache"
	"github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/pipeline"
	"github.com/matzehuels/syntower/pkg/store"
)

// GraphSource names the input graph of a request: an inline document or a
// URL to fetch. Document may be a single graph or an array of per-domain
// graphs.
type GraphSource struct {
	Document json.RawMessage `json:"graph,omitempty"`
	URL      string          `json:"url,omitempty"`
	Domain   string          `json:"domain,omitempty"`
}

// DiagramRequest is the body of POST /v1/diagrams.
type DiagramRequest struct {
	GraphSource
	Options pipeline.Options `json:"options"`
}

// RenderRequest is the body of POST /v1/render and POST /v1/graphs/{id}/render.
// Format defaults to svg.
type RenderRequest struct {
	GraphSource
	Format  string           `json:"format,omitempty"`
	Options pipeline.Options `json:"options"`
}

// GraphRequest is the body of POST /v1/graphs and PUT /v1/graphs/{id}.
type GraphRequest struct {
	GraphSource
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// resolve loads the request graph. ok is false when the request carries
// neither a document nor a URL.
func (s *Server) resolve(ctx context.Context, src GraphSource) (g graph.Graph, ok bool, err error) {
	switch {
	case len(src.Document) > 0 && src.URL != "":
		return g, true, errors.New(errors.ErrCodeInvalidInput, "give either graph or url, not both")
	case len(src.Document) > 0:
		g, err = s.Runner.Load(ctx, bytes.NewReader(src.Document), "request", src.Domain)
		return g, true, err
	case src.URL != "":
		if s.Remote == nil {
			return g, true, errors.New(errors.ErrCodeUnsupported, "fetching graphs by url is disabled")
		}
		g, err = s.Remote.Graph(ctx, src.URL, src.Domain, false)
		return g, true, err
	default:
		return g, false, nil
	}
}

func (s *Server) requireGraph(ctx context.Context, src GraphSource) (graph.Graph, error) {
	g, ok, err := s.resolve(ctx, src)
	if err == nil && !ok {
		err = errors.New(errors.ErrCodeInvalidInput, "graph or url is required")
	}
	return g, err
}

// =============================================================================
// Stateless endpoints
// =============================================================================

func (s *Server) createDiagram(w http.ResponseWriter, r *http.Request) {
	var req DiagramRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.requireGraph(r.Context(), req.GraphSource)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDiagram(w, r, s.Runner, g, req.Options)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.requireGraph(r.Context(), req.GraphSource)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, r, s.Runner, g, req.Format, req.Options)
}

func (s *Server) writeDiagram(w http.ResponseWriter, r *http.Request, runner *pipeline.Runner, g graph.Graph, opts pipeline.Options) {
	d, hit, err := runner.Diagram(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, runner *pipeline.Runner, g graph.Graph, format string, opts pipeline.Options) {
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	res, err := runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	w.Header().Set("X-Graph-Hash", res.GraphHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Stored graphs
// =============================================================================

func (s *Server) listGraphs(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{
		Limit:  queryInt(r, "limit", store.DefaultListLimit),
		Offset: queryInt(r, "offset", 0),
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit and offset must not be negative"))
		return
	}
	list, err := s.Store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": list})
}

func (s *Server) createGraph(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.requireGraph(r.Context(), req.GraphSource)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec := store.NewRecord(deref(req.Title), deref(req.Description), g)
	if err := s.Store.Create(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/graphs/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec.Summary())
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) updateGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req GraphRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, ok, err := s.resolve(r.Context(), req.GraphSource)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ok {
		rec.SetGraph(g)
	}
	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if err := s.Store.Update(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Summary())
}

func (s *Server) deleteGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateGraphID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) graphDiagram(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDiagram(w, r, s.recordRunner(rec.ID), rec.Graph, pipeline.Options{})
}

func (s *Server) renderGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req RenderRequest
	if r.Method == http.MethodPost {
		if err := s.decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if len(req.Document) > 0 || req.URL != "" {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "stored graphs cannot be overridden in a render request"))
			return
		}
	}
	if f := r.URL.Query().Get("format"); f != "" {
		req.Format = f
	}
	s.writeArtifact(w, r, s.recordRunner(rec.ID), rec.Graph, req.Format, req.Options)
}

func (s *Server) record(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateGraphID(id); err != nil {
		return nil, err
	}
	return s.Store.Get(r.Context(), id)
}

// recordRunner scopes cache keys to one stored graph.
func (s *Server) recordRunner(id string) *pipeline.Runner {
	runner := *s.Runner
	runner.Keyer = cache.NewScopedKeyer(s.Runner.Keyer, "graph:"+id+":")
	return &runner
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
