package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rianlucascs/dowtrend/internal/external/b3"
	"github.com/rianlucascs/dowtrend/internal/external/yahoo"
	"github.com/rianlucascs/dowtrend/internal/s0_universe"
	"github.com/rianlucascs/dowtrend/internal/s1_series"
	"github.com/rianlucascs/dowtrend/internal/s2_returns"
	"github.com/rianlucascs/dowtrend/internal/s3_batch"
	"github.com/rianlucascs/dowtrend/internal/store"
	"github.com/rianlucascs/dowtrend/pkg/config"
	"github.com/rianlucascs/dowtrend/pkg/database"
	"github.com/rianlucascs/dowtrend/pkg/httputil"
	"github.com/rianlucascs/dowtrend/pkg/logger"
	"github.com/rianlucascs/dowtrend/pkg/redis"
)

// app holds the wired pipeline shared by every command
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	runner    *s3_batch.Runner
	persister *store.Persister
	closers   []func()
}

// appOptions selects the optional parts of the wiring
type appOptions struct {
	pipeline bool      // build resolver, fetcher, processor and runner
	progress io.Writer // non-nil adds a progress bar observer
}

// loadConfig loads config and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newApp builds the dependency graph:
// config → logger → http → b3/yahoo → s0 → s1 → s2 → s3, and the result persister
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	a := &app{cfg: cfg, logger: log}

	// 3. Result stores
	persister, err := a.newPersister(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.persister = persister

	if !opts.pipeline {
		return a, nil
	}

	// 4. HTTP + external clients
	httpClient := httputil.New(cfg, log)
	b3Client := b3.NewClient(httpClient, log, cfg.B3)
	yahooClient := yahoo.NewClient(httpClient, log, cfg.Yahoo)

	// 5. Pipeline stages
	resolver := s0_universe.NewResolver(b3Client, log)
	fetcher := s1_series.NewFetcher(yahooClient, log)
	processor := s2_returns.NewProcessor(fetcher, log)

	observers := []s3_batch.ProgressObserver{s3_batch.NewLogObserver(log)}
	if opts.progress != nil {
		observers = append(observers, s3_batch.NewBarObserver(opts.progress))
	}
	a.runner = s3_batch.NewRunner(resolver, processor, log, observers...)

	return a, nil
}

// newPersister wires the file store plus the enabled mirrors
func (a *app) newPersister(ctx context.Context) (*store.Persister, error) {
	var mirrors []store.Backend

	rdb, err := redis.New(ctx, a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	if rdb.Enabled() {
		mirrors = append(mirrors, store.NewRedisStore(rdb))
	}

	if a.cfg.ArchiveEnabled() {
		db, err := database.New(ctx, a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		archive := store.NewPostgresStore(db.Pool)
		if err := archive.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure archive schema: %w", err)
		}
		mirrors = append(mirrors, archive)
	}

	return store.NewPersister(store.NewFileStore(a.cfg.DataDir), a.logger, mirrors...), nil
}

// Close releases connections in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
