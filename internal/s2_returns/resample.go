package s2_returns

import (
	"fmt"
	"time"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

// biweeklyWindow is the fixed window length of the biweekly horizon,
// anchored at the first observation rather than at calendar half-months
const biweeklyWindow = 15

// Period is one resampled bucket: its label and the last price observed in it
type Period struct {
	Label time.Time
	Close float64
}

// Resample buckets a chronologically ascending series by the horizon's rule and
// keeps the last observed price of every bucket. Empty buckets are not emitted.
func Resample(series contracts.TimeSeries, h contracts.Horizon) ([]Period, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: unknown horizon %d", contracts.ErrComputationUndefined, int(h))
	}
	if series.IsEmpty() {
		return nil, nil
	}

	origin := dayOf(series[0].Date)
	periods := make([]Period, 0)
	for _, p := range series {
		label := periodLabel(h, dayOf(p.Date), origin)
		if n := len(periods); n > 0 && periods[n-1].Label.Equal(label) {
			periods[n-1].Close = p.AdjustedClose
			continue
		}
		periods = append(periods, Period{Label: label, Close: p.AdjustedClose})
	}

	return periods, nil
}

// periodLabel returns the bucket label of a day:
// the closing Sunday for weeks, the window start for biweekly windows
// and the last calendar day for months, quarters and years.
func periodLabel(h contracts.Horizon, d, origin time.Time) time.Time {
	switch h {
	case contracts.Weekly:
		return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
	case contracts.Biweekly:
		days := int(d.Sub(origin).Hours() / 24)
		return origin.AddDate(0, 0, (days/biweeklyWindow)*biweeklyWindow)
	case contracts.Monthly:
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	case contracts.Quarterly:
		endMonth := ((int(d.Month())-1)/3 + 1) * 3
		return time.Date(d.Year(), time.Month(endMonth)+1, 0, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

// dayOf drops the clock part, keeping the calendar date
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
