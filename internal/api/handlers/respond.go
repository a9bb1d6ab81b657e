package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// parseSample accepts the canonical form ("index:IDIV") or the file key ("index_IDIV")
func parseSample(raw string) (contracts.SampleSpecifier, error) {
	spec, err := contracts.ParseSampleSpecifier(raw)
	if err == nil {
		return spec, nil
	}
	if code, ok := strings.CutPrefix(raw, "index_"); ok {
		return contracts.Index(code)
	}
	return contracts.SampleSpecifier{}, fmt.Errorf("invalid sample %q", raw)
}
