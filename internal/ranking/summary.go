package ranking

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/store"
)

// HorizonSummary describes the cross-section of one horizon.
// Statistics over no valid value are NaN.
type HorizonSummary struct {
	Horizon contracts.Horizon
	Count   int
	Valid   int
	Mean    float64
	Median  float64
	StdDev  float64
	Min     float64
	Max     float64
	Gainers int
	Losers  int
}

// Summarize computes one summary per horizon in canonical order
func Summarize(table *store.Table) [contracts.NumHorizons]HorizonSummary {
	var out [contracts.NumHorizons]HorizonSummary
	for i, h := range contracts.Horizons {
		out[i] = summarize(h, table.Column(h))
	}
	return out
}

func summarize(h contracts.Horizon, column []float64) HorizonSummary {
	s := HorizonSummary{
		Horizon: h,
		Count:   len(column),
		Mean:    math.NaN(),
		Median:  math.NaN(),
		StdDev:  math.NaN(),
		Min:     math.NaN(),
		Max:     math.NaN(),
	}

	valid := make([]float64, 0, len(column))
	for _, v := range column {
		if math.IsNaN(v) {
			continue
		}
		valid = append(valid, v)
		switch {
		case v > 0:
			s.Gainers++
		case v < 0:
			s.Losers++
		}
	}
	s.Valid = len(valid)
	if s.Valid == 0 {
		return s
	}

	sort.Float64s(valid)
	s.Min, s.Max = valid[0], valid[len(valid)-1]
	s.Median = median(valid)
	if s.Valid == 1 {
		s.Mean = valid[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(valid, nil)
	return s
}

// median of sorted values, averaging the middle pair
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
