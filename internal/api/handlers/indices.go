package handlers

import (
	"net/http"

	"github.com/rianlucascs/dowtrend/internal/external/b3"
)

// IndicesHandler lists the known indices
type IndicesHandler struct {
	catalog b3.Catalog
}

// NewIndicesHandler creates a new indices handler
func NewIndicesHandler(catalog b3.Catalog) *IndicesHandler {
	return &IndicesHandler{catalog: catalog}
}

// List returns the index catalog with each sample specifier
// GET /api/indices
func (h *IndicesHandler) List(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Sample string `json:"sample"`
	}

	items := make([]item, 0, len(h.catalog))
	for _, idx := range h.catalog {
		items = append(items, item{Code: idx.Code, Name: idx.Name, Sample: "index:" + idx.Code})
	}

	respondJSON(w, http.StatusOK, items)
}
