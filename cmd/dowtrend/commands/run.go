package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/external/b3"
	"github.com/rianlucascs/dowtrend/internal/store"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [sample]",
	Short: "Compute and save returns for a sample",
	Long: `Resolve a sample, fetch every ticker's history and save the latest returns.

Samples:
  listed_companies   every company listed on B3 (alias: empresas_listadas)
  index:<CODE>       constituents of a B3 index, e.g. index:IDIV (alias: indice:<CODE>)

With --all-indices every index of the catalog is processed in order; an index
that fails is reported and the next one proceeds.

Example:
  go run ./cmd/dowtrend run listed_companies
  go run ./cmd/dowtrend run index:SMLL --progress
  go run ./cmd/dowtrend run --all-indices`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReturns,
}

var (
	// Run flags
	runAllIndices bool
	runProgress   bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runAllIndices, "all-indices", false, "process every index of the catalog")
	runCmd.Flags().BoolVar(&runProgress, "progress", false, "show a progress bar on stderr")
}

func runReturns(cmd *cobra.Command, args []string) error {
	specs, err := runSamples(args, runAllIndices)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress io.Writer
	if runProgress {
		progress = os.Stderr
	}

	a, err := newApp(ctx, appOptions{pipeline: true, progress: progress})
	if err != nil {
		return err
	}
	defer a.Close()

	failed := 0
	for i, spec := range specs {
		if err := runSample(ctx, a, spec); err != nil {
			if errors.Is(err, context.Canceled) || len(specs) == 1 {
				return err
			}
			failed++
			a.logger.WithField("sample", spec.String()).WithError(err).Error("Sample failed, continuing")
			continue
		}
		if len(specs) > 1 {
			PrintProgress("Run", spec.String(), i+1, len(specs))
		}
	}

	if failed > 0 {
		PrintWarning(fmt.Sprintf("%d of %d samples failed", failed, len(specs)))
	}
	return nil
}

// runSamples turns the arguments into the ordered list of samples to process
func runSamples(args []string, allIndices bool) ([]contracts.SampleSpecifier, error) {
	switch {
	case allIndices && len(args) > 0:
		return nil, errors.New("pass either a sample or --all-indices, not both")
	case allIndices:
		catalog, err := b3.LoadCatalog()
		if err != nil {
			return nil, fmt.Errorf("load index catalog: %w", err)
		}
		specs := make([]contracts.SampleSpecifier, 0, len(catalog))
		for _, code := range catalog.Codes() {
			spec, err := contracts.Index(code)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
		return specs, nil
	case len(args) == 0:
		return nil, errors.New("a sample is required (or --all-indices)")
	}

	spec, err := contracts.ParseSampleSpecifier(args[0])
	if err != nil {
		return nil, err
	}
	return []contracts.SampleSpecifier{spec}, nil
}

// runSample runs one batch and saves it through the persister
func runSample(ctx context.Context, a *app, spec contracts.SampleSpecifier) error {
	PrintDoubleSeparator()
	fmt.Printf("  Returns   : %s\n", spec)
	PrintSeparator()

	start := time.Now()
	results, err := a.runner.Run(ctx, spec)
	if err != nil {
		PrintError(fmt.Sprintf("Run failed: %v", err))
		return err
	}

	if !a.persister.Save(ctx, spec, results) {
		PrintError("Failed to save results")
		return fmt.Errorf("%w: save %s", contracts.ErrPersistenceFailure, spec)
	}

	target := a.persister.Primary().Name()
	if fs, ok := a.persister.Primary().(*store.FileStore); ok {
		target = fs.Path(spec)
	}
	PrintSuccess(fmt.Sprintf("Saved %d tickers to %s in %.2fs", results.Len(), target, time.Since(start).Seconds()))
	return nil
}
