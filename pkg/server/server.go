package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ventradar/ventradar/internal/store"
	"github.com/ventradar/ventradar/pkg/fetch"
	"github.com/ventradar/ventradar/pkg/insight"
	"github.com/ventradar/ventradar/pkg/metrics"
	"github.com/ventradar/ventradar/pkg/scoring"
)

// Server provides the HTTP API. Every derived number it returns comes from
// the scoring engine; nothing is recomputed or cached here.
type Server struct {
	store  store.Store
	client *fetch.Client
	feed   *fetch.Feed // optional
	port   int
}

// New creates a new HTTP server.
func New(s store.Store, client *fetch.Client, feed *fetch.Feed, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		store:  s,
		client: client,
		feed:   feed,
		port:   port,
	}
}

// Handler returns the API routes. Split out from ListenAndServe for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/v1/insights", s.instrument("/api/v1/insights", s.handleInsights))
	mux.HandleFunc("/api/v1/insights/", s.instrument("/api/v1/insights/{id}", s.handleInsightSubroutes))
	mux.HandleFunc("/api/v1/categories", s.instrument("/api/v1/categories", s.handleCategories))
	mux.HandleFunc("/api/v1/sync", s.instrument("/api/v1/sync", s.handleSync))
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("ventradar server listening on %s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// insightSummary is one list row: the stored identity plus engine-derived
// score and confidence.
type insightSummary struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Category       string                 `json:"category"`
	Relevance      float64                `json:"relevance"`
	CompositeScore float64                `json:"composite_score"`
	ConfidenceTier scoring.ConfidenceTier `json:"confidence_tier"`
	EvidenceCount  int                    `json:"evidence_count"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	opts := store.ListOpts{Limit: 100}
	if cat := r.URL.Query().Get("category"); cat != "" {
		opts.Category = cat
	}
	if min := r.URL.Query().Get("min_relevance"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			opts.MinRelevance = v
		}
	}
	if since := r.URL.Query().Get("since"); since != "" {
		if t, err := time.Parse(time.RFC3339, since); err == nil {
			opts.Since = t
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			opts.Limit = v
		}
	}

	ins, err := s.store.ListInsights(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	summaries := make([]insightSummary, 0, len(ins))
	for i := range ins {
		conf := scoring.AggregateConfidence(&ins[i])
		summaries = append(summaries, insightSummary{
			ID:             ins[i].ID,
			Title:          ins[i].Title,
			Category:       ins[i].Category,
			Relevance:      ins[i].Relevance,
			CompositeScore: scoring.OverallScore(&ins[i]),
			ConfidenceTier: conf.Tier,
			EvidenceCount:  conf.EvidenceCount,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  summaries,
		"count": len(summaries),
	})
}

// insightView is the detail payload: the raw record plus everything the
// rendering layer needs, derived once here.
type insightView struct {
	*insight.Insight
	DimensionScores map[insight.Dimension]float64 `json:"dimension_scores"`
	CompositeScore  float64                       `json:"composite_score"`
	Confidence      scoring.Confidence            `json:"confidence"`
	Series          scoring.Series                `json:"series"`
	MarketQuadrant  scoring.Quadrant              `json:"market_quadrant"`
}

func (s *Server) handleInsightSubroutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/insights/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "missing insight id"})
		return
	}

	in, err := s.store.GetInsight(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	switch sub {
	case "":
		writeJSON(w, http.StatusOK, buildView(in))
	case "series":
		writeJSON(w, http.StatusOK, scoring.BuildSeries(in))
	case "positioning":
		s.handlePositioning(w, r, in)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource " + sub})
	}
}

func buildView(in *insight.Insight) insightView {
	return insightView{
		Insight:         in,
		DimensionScores: scoring.DimensionScores(in),
		CompositeScore:  scoring.OverallScore(in),
		Confidence:      scoring.AggregateConfidence(in),
		Series:          scoring.BuildSeries(in),
		MarketQuadrant:  marketQuadrant(in),
	}
}

// marketQuadrant places an insight on the feasibility/opportunity map.
// Absent axes fall back to the composite score so the chart stays populated.
func marketQuadrant(in *insight.Insight) scoring.Quadrant {
	composite := scoring.OverallScore(in)

	x, ok := scoring.NormalizeDimension(insight.DimFeasibility, in.Dimension(insight.DimFeasibility))
	if !ok {
		x = composite
	}
	y, ok := scoring.NormalizeDimension(insight.DimOpportunity, in.Dimension(insight.DimOpportunity))
	if !ok {
		y = composite
	}

	return scoring.ClassifyQuadrant(x, y, scoring.MarketMapAxes)
}

// handlePositioning classifies caller-supplied axis scores, defaulting to
// the competitor price/feature map. Used by comparison views that bring
// their own axes.
func (s *Server) handlePositioning(w http.ResponseWriter, r *http.Request, in *insight.Insight) {
	axes := scoring.CompetitorMapAxes
	if r.URL.Query().Get("map") == "market" {
		axes = scoring.MarketMapAxes
	}

	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y query params required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"insight_id": in.ID,
		"x":          x,
		"y":          y,
		"quadrant":   scoring.ClassifyQuadrant(x, y, axes),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	counts, err := s.store.CountByCategory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  counts,
		"count": len(counts),
	})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	ctx := r.Context()
	synced := 0
	var errs []string

	if s.client != nil {
		ins, err := s.client.ListInsights(ctx, time.Time{})
		if err != nil {
			metrics.SyncErrors.Inc()
			errs = append(errs, fmt.Sprintf("backend: %v", err))
		} else if err := s.store.UpsertInsights(ctx, ins); err != nil {
			errs = append(errs, fmt.Sprintf("store: %v", err))
		} else {
			synced += len(ins)
		}
	}

	if s.feed != nil {
		ins, err := s.feed.Collect(ctx)
		if err != nil {
			metrics.SyncErrors.Inc()
			errs = append(errs, fmt.Sprintf("feed: %v", err))
		} else if err := s.store.UpsertInsights(ctx, ins); err != nil {
			errs = append(errs, fmt.Sprintf("feed store: %v", err))
		} else {
			synced += len(ins)
		}
	}

	metrics.InsightsSynced.Add(float64(synced))

	resp := map[string]any{"synced": synced}
	if len(errs) > 0 {
		resp["errors"] = errs
	}

	writeJSON(w, http.StatusOK, resp)
}

// instrument records request count and latency for one route.
func (s *Server) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
