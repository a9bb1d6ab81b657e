package s0_universe

import (
	"context"
	"fmt"
	"time"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// Source provides the raw ticker tables (implemented by b3.Client)
type Source interface {
	ListedCompanies(ctx context.Context) ([]string, error)
	IndexConstituents(ctx context.Context, code string) ([]string, error)
}

// Resolver turns a sample specifier into its ordered ticker list
type Resolver struct {
	source Source
	logger *logger.Logger
}

// NewResolver creates a new universe resolver
func NewResolver(source Source, log *logger.Logger) *Resolver {
	return &Resolver{
		source: source,
		logger: log,
	}
}

// Resolve returns the tickers of a sample in source order.
// The specifier is validated before any network access.
// ⭐ SSOT: S0 → S3 유니버스 생성
func (r *Resolver) Resolve(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.Universe, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var (
		tickers []string
		err     error
	)
	switch spec.Kind() {
	case contracts.SampleListedCompanies:
		tickers, err = r.source.ListedCompanies(ctx)
	case contracts.SampleIndex:
		tickers, err = r.source.IndexConstituents(ctx, spec.IndexCode())
	default:
		return nil, fmt.Errorf("%w: unsupported kind %d", contracts.ErrInvalidSpecifier, spec.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", contracts.ErrDataSourceUnavailable, spec, err)
	}

	universe := &contracts.Universe{
		Sample:     spec,
		Tickers:    dedupe(tickers),
		ResolvedAt: time.Now(),
	}

	r.logger.WithFields(map[string]interface{}{
		"sample":  spec.String(),
		"tickers": universe.Count(),
	}).Info("Universe resolved")

	return universe, nil
}

// dedupe keeps the first occurrence of each ticker
func dedupe(tickers []string) []contracts.TickerSymbol {
	seen := make(map[string]bool, len(tickers))
	out := make([]contracts.TickerSymbol, 0, len(tickers))
	for _, t := range tickers {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
