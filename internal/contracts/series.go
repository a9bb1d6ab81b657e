package contracts

import (
	"sort"
	"time"
)

// TickerSymbol identifies a tradable instrument as the universe source spells it (e.g. "PETR4")
type TickerSymbol = string

// PricePoint is one trading day of adjusted close
type PricePoint struct {
	Date          time.Time `json:"date"`
	AdjustedClose float64   `json:"adj_close"`
}

// TimeSeries is a chronologically ascending list of daily adjusted closes.
// An empty series is the fetch failure sentinel.
type TimeSeries []PricePoint

// NewTimeSeries copies points and sorts them by date
func NewTimeSeries(points []PricePoint) TimeSeries {
	ts := make(TimeSeries, len(points))
	copy(ts, points)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Date.Before(ts[j].Date) })
	return ts
}

// IsEmpty reports whether the series holds no observation
func (ts TimeSeries) IsEmpty() bool {
	return len(ts) == 0
}

// Tail returns the last n points
func (ts TimeSeries) Tail(n int) TimeSeries {
	if n >= len(ts) {
		return ts
	}
	if n <= 0 {
		return TimeSeries{}
	}
	return ts[len(ts)-n:]
}

// Last returns the latest observation
func (ts TimeSeries) Last() (PricePoint, bool) {
	if len(ts) == 0 {
		return PricePoint{}, false
	}
	return ts[len(ts)-1], true
}
