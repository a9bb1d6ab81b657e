package contracts

import "context"

// Each pipeline stage implements one of these interfaces so the next stage
// can be tested against a fake.

// UniverseResolver resolves a sample into its ordered ticker list (S0)
type UniverseResolver interface {
	Resolve(ctx context.Context, spec SampleSpecifier) (*Universe, error)
}

// SeriesFetcher retrieves the adjusted close history of one ticker (S1).
// A failed retrieval yields an empty series, never an error.
type SeriesFetcher interface {
	Fetch(ctx context.Context, ticker TickerSymbol) TimeSeries
}

// TickerProcessor computes every horizon for one ticker (S2)
type TickerProcessor interface {
	Process(ctx context.Context, ticker TickerSymbol) TickerResult
}

// ResultStore persists and reloads result maps keyed by sample
type ResultStore interface {
	Save(ctx context.Context, spec SampleSpecifier, results *ResultMap) error
	Load(ctx context.Context, spec SampleSpecifier) (*ResultMap, error)
}
