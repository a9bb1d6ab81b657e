package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/ranking"
	"github.com/rianlucascs/dowtrend/internal/store"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// ResultLoader loads persisted results (implemented by store.Persister)
type ResultLoader interface {
	Load(ctx context.Context, spec contracts.SampleSpecifier) *contracts.ResultMap
}

// ResultsHandler serves persisted result maps to downstream consumers
// ⭐ SSOT: 결과 조회 API 핸들러는 이 구조체에서만
type ResultsHandler struct {
	loader ResultLoader
	topN   int
	logger *logger.Logger
}

// NewResultsHandler creates a new results handler; topN is the default ranking size
func NewResultsHandler(loader ResultLoader, topN int, log *logger.Logger) *ResultsHandler {
	return &ResultsHandler{
		loader: loader,
		topN:   topN,
		logger: log,
	}
}

// load parses {sample} and loads its results, writing the error response itself
func (h *ResultsHandler) load(w http.ResponseWriter, r *http.Request) (contracts.SampleSpecifier, *contracts.ResultMap, bool) {
	spec, err := parseSample(mux.Vars(r)["sample"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return spec, nil, false
	}

	results := h.loader.Load(r.Context(), spec)
	if results == nil {
		respondError(w, http.StatusNotFound, "no results for sample "+spec.String())
		return spec, nil, false
	}

	return spec, results, true
}

// GetResults returns the result map of a sample
// GET /api/results/{sample}?format=json|table
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "table" {
		respondError(w, http.StatusBadRequest, "format must be json or table")
		return
	}

	_, results, ok := h.load(w, r)
	if !ok {
		return
	}

	if format == "table" {
		respondJSON(w, http.StatusOK, store.NewTable(results))
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// GetRanking returns the top tickers of one horizon
// GET /api/results/{sample}/rank?horizon=mensal&direction=gain|loss&limit=10
func (h *ResultsHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	horizon, err := contracts.ParseHorizon(q.Get("horizon"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	direction, err := ranking.ParseDirection(q.Get("direction"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := h.topN
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	spec, results, ok := h.load(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sample":    spec.String(),
		"horizon":   horizon.Key(),
		"direction": direction.String(),
		"entries":   ranking.Top(store.NewTable(results), horizon, direction, limit),
	})
}

// GetSummary returns per horizon statistics of a sample
// GET /api/results/{sample}/summary
func (h *ResultsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	spec, results, ok := h.load(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sample":   spec.String(),
		"tickers":  results.Len(),
		"horizons": ranking.Summarize(store.NewTable(results)),
	})
}
