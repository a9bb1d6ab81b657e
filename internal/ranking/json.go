package ranking

import (
	"encoding/json"
	"math"

	"github.com/guregu/null/v6"
)

func finite(v float64) null.Float {
	return null.NewFloat(v, !math.IsNaN(v) && !math.IsInf(v, 0))
}

// MarshalJSON writes the value as null when undefined
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rank   int        `json:"rank"`
		Ticker string     `json:"ticker"`
		Value  null.Float `json:"value"`
	}{e.Rank, e.Ticker, finite(e.Value)})
}

// MarshalJSON writes undefined statistics as null
func (s HorizonSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Horizon string     `json:"horizon"`
		Count   int        `json:"count"`
		Valid   int        `json:"valid"`
		Mean    null.Float `json:"mean"`
		Median  null.Float `json:"median"`
		StdDev  null.Float `json:"stddev"`
		Min     null.Float `json:"min"`
		Max     null.Float `json:"max"`
		Gainers int        `json:"gainers"`
		Losers  int        `json:"losers"`
	}{
		s.Horizon.Key(), s.Count, s.Valid,
		finite(s.Mean), finite(s.Median), finite(s.StdDev), finite(s.Min), finite(s.Max),
		s.Gainers, s.Losers,
	})
}
