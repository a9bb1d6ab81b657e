package s1_series

import (
	"context"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/external/yahoo"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// PriceSource provides daily adjusted close history (implemented by yahoo.Client)
type PriceSource interface {
	FetchAdjustedClose(ctx context.Context, ticker string) ([]yahoo.DailyClose, error)
}

// Fetcher retrieves one ticker's time series and isolates provider failures
type Fetcher struct {
	source PriceSource
	logger *logger.Logger
}

// NewFetcher creates a new series fetcher
func NewFetcher(source PriceSource, log *logger.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: log,
	}
}

// Fetch returns the full adjusted close history of a ticker.
// Any provider error yields an empty series; the error is only logged.
// ⭐ SSOT: 종목 단위 실패 격리 경계
func (f *Fetcher) Fetch(ctx context.Context, ticker contracts.TickerSymbol) contracts.TimeSeries {
	closes, err := f.source.FetchAdjustedClose(ctx, ticker)
	if err != nil {
		f.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"error":  err.Error(),
		}).Warn("Series fetch failed")
		return contracts.TimeSeries{}
	}

	points := make([]contracts.PricePoint, 0, len(closes))
	for _, c := range closes {
		points = append(points, contracts.PricePoint{
			Date:          c.Date,
			AdjustedClose: c.AdjustedClose,
		})
	}

	series := contracts.NewTimeSeries(points)
	if series.IsEmpty() {
		f.logger.WithField("ticker", ticker).Warn("Series fetch returned no data")
	}

	return series
}
