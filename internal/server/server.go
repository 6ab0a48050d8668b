// Package server exposes the evaluation engine over HTTP. The server is a
// thin boundary: it decodes requests, calls the pure engine, and encodes
// results; the engine never depends on it.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/tableval/internal/candidate"
	"github.com/sells-group/tableval/internal/config"
	"github.com/sells-group/tableval/internal/geometry"
	"github.com/sells-group/tableval/internal/gold"
	"github.com/sells-group/tableval/internal/match"
	"github.com/sells-group/tableval/internal/model"
	"github.com/sells-group/tableval/internal/store"
)

// Server wires the engine, gold dataset, and optional run store behind an
// HTTP router.
type Server struct {
	gold    *gold.Dataset
	eval    *match.Evaluator
	recon   *geometry.Reconstructor
	runs    store.Store // nil disables persistence endpoints' save path
	limiter *rate.Limiter
}

// New creates a Server.
func New(ds *gold.Dataset, ev *match.Evaluator, recon *geometry.Reconstructor, runs store.Store, cfg config.ServerConfig) *Server {
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 10
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 20
	}
	return &Server{
		gold:    ds,
		eval:    ev,
		recon:   recon,
		runs:    runs,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Router builds the chi router with CORS and throttling middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.throttle)

	r.Get("/health", s.handleHealth)
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/rowspan", s.handleRowSpan)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)

	return r
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type evaluateRequest struct {
	Source   string            `json:"source"`
	DocID    string            `json:"doc_id"`
	Elements []json.RawMessage `json:"elements"`
	PageMap  map[int][]int     `json:"page_map,omitempty"`
	Save     bool              `json:"save,omitempty"`
}

type evaluateResponse struct {
	DocID string `json:"doc_id"`
	RunID string `json:"run_id,omitempty"`
	model.Evaluation
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	docID, tables := s.gold.Resolve(req.Source, req.DocID)

	// Malformed elements are skipped, never fatal.
	elements := make([]model.CandidateElement, 0, len(req.Elements))
	for _, raw := range req.Elements {
		el, err := candidate.ParseElement(raw)
		if err != nil {
			continue
		}
		elements = append(elements, el)
	}

	eval := s.eval.Evaluate(r.Context(), docID, tables, elements, model.PageMap(req.PageMap))

	resp := evaluateResponse{DocID: docID, Evaluation: eval}
	if req.Save && s.runs != nil && docID != "" {
		run, err := s.runs.SaveRun(r.Context(), docID, req.Source, &eval)
		if err != nil {
			zap.L().Error("server: save run", zap.Error(err))
		} else {
			resp.RunID = run.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type rowSpanRequest struct {
	OriginalHTML string            `json:"original_html"`
	Box          model.BoundingBox `json:"box"`
	ChunkHTML    string            `json:"chunk_html"`
}

type rowSpanResponse struct {
	Segment *model.RowSegment `json:"segment"`
}

func (s *Server) handleRowSpan(w http.ResponseWriter, r *http.Request) {
	var req rowSpanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// A null segment means "fall back to the chunk's own box"; it is a
	// result, not an error.
	seg, _ := s.recon.Reconstruct(req.OriginalHTML, req.Box, req.ChunkHTML)
	writeJSON(w, http.StatusOK, rowSpanResponse{Segment: seg})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusNotImplemented, "run store disabled")
		return
	}

	runs, err := s.runs.ListRuns(r.Context(), store.RunFilter{
		DocID: r.URL.Query().Get("doc_id"),
	})
	if err != nil {
		zap.L().Error("server: list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	if runs == nil {
		runs = []model.EvalRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusNotImplemented, "run store disabled")
		return
	}

	run, err := s.runs.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
