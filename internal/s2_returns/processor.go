package s2_returns

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// Processor computes every horizon of one ticker from a single fetch
type Processor struct {
	fetcher contracts.SeriesFetcher
	logger  *logger.Logger
}

// NewProcessor creates a new ticker processor
func NewProcessor(fetcher contracts.SeriesFetcher, log *logger.Logger) *Processor {
	return &Processor{
		fetcher: fetcher,
		logger:  log,
	}
}

// Process fetches the series once and fills the five horizons in canonical order.
// It never fails: an undefined horizon is left as NaN.
// ⭐ SSOT: S2 종목별 결과 생성
func (p *Processor) Process(ctx context.Context, ticker contracts.TickerSymbol) contracts.TickerResult {
	result := contracts.NewTickerResult()
	series := p.fetcher.Fetch(ctx, ticker)

	for _, h := range contracts.Horizons {
		v, err := computeSafe(series, h)
		if err != nil {
			if !series.IsEmpty() && !errors.Is(err, contracts.ErrComputationUndefined) {
				p.logger.WithFields(map[string]interface{}{
					"ticker":  ticker,
					"horizon": h.Key(),
					"error":   err.Error(),
				}).Warn("Return computation failed")
			}
			continue
		}
		result.Set(h, v)
	}

	return result
}

// computeSafe converts a panic in the calculation into an error for that horizon only
func computeSafe(series contracts.TimeSeries, h contracts.Horizon) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = math.NaN(), fmt.Errorf("panic computing %s: %v", h, r)
		}
	}()
	return ComputeLatestReturn(series, h)
}
