package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// Persister writes a run's results to the primary store and best-effort mirrors.
// Failures are logged and reported as false or nil, never returned.
// ⭐ SSOT: 결과 저장/로드 진입점
type Persister struct {
	primary Backend
	mirrors []Backend
	logger  *logger.Logger
}

// NewPersister creates a persister over primary and optional mirrors
func NewPersister(primary Backend, log *logger.Logger, mirrors ...Backend) *Persister {
	return &Persister{
		primary: primary,
		mirrors: mirrors,
		logger:  log,
	}
}

// Primary returns the authoritative store
func (p *Persister) Primary() Backend {
	return p.primary
}

// Save reports whether the primary store accepted the map.
// Mirrors are attempted only after a successful primary write.
func (p *Persister) Save(ctx context.Context, spec contracts.SampleSpecifier, results *contracts.ResultMap) bool {
	log := p.logger.WithFields(map[string]interface{}{
		"sample":  spec.String(),
		"store":   p.primary.Name(),
		"tickers": results.Len(),
	})
	if fs, ok := p.primary.(*FileStore); ok {
		log = log.WithField("path", fs.Path(spec))
	}
	if id := results.RunID(); id != uuid.Nil {
		log = log.WithField("run_id", id.String())
	}

	if err := p.primary.Save(ctx, spec, results); err != nil {
		log.WithError(err).Error("Failed to save results")
		return false
	}
	log.Info("Results saved")

	for _, m := range p.mirrors {
		if err := m.Save(ctx, spec, results); err != nil {
			p.logger.WithFields(map[string]interface{}{
				"sample": spec.String(),
				"store":  m.Name(),
			}).WithError(err).Warn("Failed to mirror results")
			continue
		}
		p.logger.WithFields(map[string]interface{}{
			"sample": spec.String(),
			"store":  m.Name(),
		}).Debug("Results mirrored")
	}

	return true
}

// Load returns the persisted map of a sample, or nil when missing or malformed
func (p *Persister) Load(ctx context.Context, spec contracts.SampleSpecifier) *contracts.ResultMap {
	results, err := p.primary.Load(ctx, spec)
	if err != nil {
		log := p.logger.WithFields(map[string]interface{}{
			"sample": spec.String(),
			"store":  p.primary.Name(),
		}).WithError(err)
		if errors.Is(err, ErrNotFound) {
			log.Warn("Results not found")
		} else {
			log.Error("Failed to load results")
		}
		return nil
	}
	return results
}

// LoadTable returns the tabular view of a sample, or nil when missing or malformed
func (p *Persister) LoadTable(ctx context.Context, spec contracts.SampleSpecifier) *Table {
	results := p.Load(ctx, spec)
	if results == nil {
		return nil
	}
	return NewTable(results)
}
