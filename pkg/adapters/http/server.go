// Package http serves published experiment sets over a read-only HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/flatexp/internal/logging"
	"github.com/aretw0/flatexp/internal/presentation/graph"
	"github.com/aretw0/flatexp/internal/presentation/report"
	"github.com/aretw0/flatexp/pkg/catalog"
	"github.com/aretw0/flatexp/pkg/domain"
)

// Server exposes a snapshot catalog.
type Server struct {
	Catalog  *catalog.Manager
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithGatherer serves the metrics of g on /metrics. Without it /metrics is not routed.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// SnapshotSummary is one entry of GET /snapshots.
type SnapshotSummary struct {
	ID          string `json:"id"`
	Dimensions  int    `json:"dimensions"`
	Instances   int    `json:"instances"`
	Experiments int    `json:"experiments"`
	Runs        int    `json:"runs"`
	DataPoints  int    `json:"data_points"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler for the catalog.
//
//	GET /snapshots              list with counts
//	GET /snapshots/{id}         experiment set as JSON
//	GET /snapshots/{id}/graph   Mermaid flowchart (?highlight=experiment, repeatable)
//	GET /snapshots/{id}/report  markdown summary
//	GET /metrics                Prometheus metrics, when a gatherer is set
func NewHandler(c *catalog.Manager, opts ...Option) http.Handler {
	s := &Server{
		Catalog: c,
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/snapshots", s.ListSnapshots)
	r.Route("/snapshots/{id}", func(r chi.Router) {
		r.Get("/", s.GetSnapshot)
		r.Get("/graph", s.GetGraph)
		r.Get("/report", s.GetReport)
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListSnapshots handles GET /snapshots.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Catalog.List(r.Context())
	if err != nil {
		s.fail(w, "ListSnapshots", err)
		return
	}

	summaries := make([]SnapshotSummary, 0, len(ids))
	for _, id := range ids {
		set, err := s.Catalog.Load(r.Context(), id)
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			// Deleted or expired since List.
			continue
		}
		if err != nil {
			s.fail(w, "ListSnapshots", err)
			return
		}
		summaries = append(summaries, SnapshotSummary{
			ID:          id,
			Dimensions:  len(set.Dimensions),
			Instances:   len(set.Instances),
			Experiments: len(set.Experiments),
			Runs:        set.RunCount(),
			DataPoints:  set.DataPointCount(),
		})
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

// GetSnapshot handles GET /snapshots/{id}.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	set, ok := s.load(w, r, "GetSnapshot")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, set)
}

// GetGraph handles GET /snapshots/{id}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	set, ok := s.load(w, r, "GetGraph")
	if !ok {
		return
	}
	var overlay *graph.Overlay
	if names := r.URL.Query()["highlight"]; len(names) > 0 {
		overlay = &graph.Overlay{Experiments: names}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(set, overlay)))
}

// GetReport handles GET /snapshots/{id}/report.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	set, ok := s.load(w, r, "GetReport")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(report.Markdown(chi.URLParam(r, "id"), set)))
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, op string) (*domain.ExperimentSet, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	set, err := s.Catalog.Load(r.Context(), id)
	if err != nil {
		s.fail(w, op, err)
		return nil, false
	}
	return set, true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidSnapshotID):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.Logger.Error(op+" failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
