package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS dowtrend;

CREATE TABLE IF NOT EXISTS dowtrend.runs (
	run_id       UUID PRIMARY KEY,
	sample       TEXT NOT NULL,
	ticker_count INTEGER NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS runs_sample_created_idx ON dowtrend.runs (sample, created_at DESC);

CREATE TABLE IF NOT EXISTS dowtrend.ticker_returns (
	run_id   UUID NOT NULL REFERENCES dowtrend.runs (run_id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	ticker   TEXT NOT NULL,
	horizon  TEXT NOT NULL,
	value    DOUBLE PRECISION,
	PRIMARY KEY (run_id, ticker, horizon)
);
`

var returnColumns = []string{"run_id", "position", "ticker", "horizon", "value"}

// PostgresStore archives every saved run; Load returns the most recent one
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new archive store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Name implements Backend
func (s *PostgresStore) Name() string {
	return "postgres"
}

// EnsureSchema creates the archive tables when missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

// Save inserts a new run with one row per ticker and horizon, keyed by the map's run id
func (s *PostgresStore) Save(ctx context.Context, spec contracts.SampleSpecifier, results *contracts.ResultMap) error {
	runID := archiveRunID(results)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", contracts.ErrPersistenceFailure, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO dowtrend.runs (run_id, sample, ticker_count) VALUES ($1, $2, $3)`,
		runID, spec.String(), results.Len(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert run: %w", contracts.ErrPersistenceFailure, err)
	}

	rows := archiveRows(runID, results)
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"dowtrend", "ticker_returns"}, returnColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("%w: copy returns: %w", contracts.ErrPersistenceFailure, err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("%w: copied %d of %d rows", contracts.ErrPersistenceFailure, n, len(rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", contracts.ErrPersistenceFailure, err)
	}

	return nil
}

// Load rebuilds the latest archived run of the sample
func (s *PostgresStore) Load(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.ResultMap, error) {
	var runID uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT run_id FROM dowtrend.runs WHERE sample = $1 ORDER BY created_at DESC LIMIT 1`,
		spec.String(),
	).Scan(&runID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: archive %s: %w", contracts.ErrPersistenceFailure, spec, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query latest run: %w", contracts.ErrPersistenceFailure, err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT ticker, horizon, value FROM dowtrend.ticker_returns WHERE run_id = $1 ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query returns: %w", contracts.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var records []archiveRecord
	for rows.Next() {
		var rec archiveRecord
		if err := rows.Scan(&rec.Ticker, &rec.Horizon, &rec.Value); err != nil {
			return nil, fmt.Errorf("%w: scan return: %w", contracts.ErrPersistenceFailure, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate returns: %w", contracts.ErrPersistenceFailure, err)
	}

	results, err := fromArchive(records)
	if err != nil {
		return nil, err
	}
	results.SetRunID(runID)
	return results, nil
}

// archiveRunID returns the id of the run that produced results, or a fresh one
// for maps built outside a run
func archiveRunID(results *contracts.ResultMap) uuid.UUID {
	if id := results.RunID(); id != uuid.Nil {
		return id
	}
	return uuid.New()
}

// archiveRecord is one (ticker, horizon) value read from the archive
type archiveRecord struct {
	Ticker  string
	Horizon string
	Value   *float64
}

// archiveRows flattens a result map into COPY rows; NaN becomes NULL
func archiveRows(runID uuid.UUID, results *contracts.ResultMap) [][]interface{} {
	tickers := results.Tickers()
	rows := make([][]interface{}, 0, len(tickers)*contracts.NumHorizons)
	for pos, ticker := range tickers {
		r, _ := results.Get(ticker)
		for _, h := range contracts.Horizons {
			var value *float64
			if v := r.Get(h); !math.IsNaN(v) {
				value = &v
			}
			rows = append(rows, []interface{}{runID, pos, ticker, h.Key(), value})
		}
	}
	return rows
}

// fromArchive rebuilds a result map from records ordered by position
func fromArchive(records []archiveRecord) (*contracts.ResultMap, error) {
	results := contracts.NewResultMap(len(records) / contracts.NumHorizons)
	for _, rec := range records {
		h, err := contracts.ParseHorizon(rec.Horizon)
		if err != nil {
			return nil, fmt.Errorf("%w: archive row %s: %w", contracts.ErrPersistenceFailure, rec.Ticker, err)
		}
		r, ok := results.Get(rec.Ticker)
		if !ok {
			r = contracts.NewTickerResult()
		}
		if rec.Value != nil {
			r.Set(h, *rec.Value)
		}
		results.Set(rec.Ticker, r)
	}
	return results, nil
}
