package s3_batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// Runner executes one sequential batch: resolve, then process every ticker in order
type Runner struct {
	resolver  contracts.UniverseResolver
	processor contracts.TickerProcessor
	observer  ProgressObserver
	logger    *logger.Logger
}

// NewRunner creates a new batch runner. Every observer is notified once per ticker.
func NewRunner(resolver contracts.UniverseResolver, processor contracts.TickerProcessor, log *logger.Logger, observers ...ProgressObserver) *Runner {
	return &Runner{
		resolver:  resolver,
		processor: processor,
		observer:  multiObserver(observers),
		logger:    log,
	}
}

// Run resolves the universe once and processes every ticker sequentially.
// Resolution failures abort the run. Per-ticker failures are already NaN in
// the TickerResult, so every resolved ticker is present in the returned map.
// A cancelled context stops the run between tickers and returns its error.
// ⭐ SSOT: S3 배치 실행
func (r *Runner) Run(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.ResultMap, error) {
	runID := uuid.New()
	start := time.Now()
	log := r.logger.WithFields(map[string]interface{}{
		"run_id": runID.String(),
		"sample": spec.String(),
	})

	universe, err := r.resolver.Resolve(ctx, spec)
	if err != nil {
		log.WithError(err).Error("Universe resolution failed, run aborted")
		return nil, fmt.Errorf("resolve universe: %w", err)
	}

	tickers := universe.Tickers
	total := len(tickers)
	results := contracts.NewResultMap(total)
	results.SetRunID(runID)
	undefined := 0

	for i, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			log.WithFields(map[string]interface{}{
				"processed": i,
				"total":     total,
			}).Warn("Run cancelled")
			return nil, fmt.Errorf("run cancelled after %d of %d tickers: %w", i, total, err)
		}

		r.observer.Progress(i, total, ticker)

		result := r.processor.Process(ctx, ticker)
		if result.AllUndefined() {
			undefined++
		}
		results.Set(ticker, result)
	}

	log.WithFields(map[string]interface{}{
		"tickers":   results.Len(),
		"undefined": undefined,
		"duration":  time.Since(start).String(),
	}).Info("Run completed")

	return results, nil
}
