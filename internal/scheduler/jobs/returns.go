package jobs

import (
	"context"
	"fmt"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// BatchRunner runs one batch for a sample (implemented by s3_batch.Runner)
type BatchRunner interface {
	Run(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.ResultMap, error)
}

// ResultSaver persists a finished batch (implemented by store.Persister)
type ResultSaver interface {
	Save(ctx context.Context, spec contracts.SampleSpecifier, results *contracts.ResultMap) bool
}

// ReturnsJob recomputes and saves the returns of one sample
// ⭐ SSOT: 수익률 배치 스케줄은 이 Job에서만
type ReturnsJob struct {
	spec     contracts.SampleSpecifier
	schedule string
	runner   BatchRunner
	saver    ResultSaver
	logger   *logger.Logger
}

// NewReturnsJob creates a returns job for spec on the given cron schedule
func NewReturnsJob(spec contracts.SampleSpecifier, schedule string, runner BatchRunner, saver ResultSaver, log *logger.Logger) *ReturnsJob {
	return &ReturnsJob{
		spec:     spec,
		schedule: schedule,
		runner:   runner,
		saver:    saver,
		logger:   log,
	}
}

// Name returns the job name, e.g. "returns_index_IDIV"
func (j *ReturnsJob) Name() string {
	return "returns_" + j.spec.FileKey()
}

// Schedule returns the cron schedule
func (j *ReturnsJob) Schedule() string {
	return j.schedule
}

// Run executes one batch and saves it
func (j *ReturnsJob) Run(ctx context.Context) error {
	j.logger.WithField("sample", j.spec.String()).Info("Starting scheduled returns batch")

	results, err := j.runner.Run(ctx, j.spec)
	if err != nil {
		return fmt.Errorf("run %s: %w", j.spec, err)
	}

	if !j.saver.Save(ctx, j.spec, results) {
		return fmt.Errorf("save %s: %w", j.spec, contracts.ErrPersistenceFailure)
	}

	return nil
}
