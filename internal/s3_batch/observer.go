package s3_batch

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

// ProgressObserver receives one notification per ticker before it is processed.
// index is zero-based; total is the universe size.
type ProgressObserver interface {
	Progress(index, total int, ticker contracts.TickerSymbol)
}

// LogObserver writes a progress line per ticker
type LogObserver struct {
	logger *logger.Logger
}

// NewLogObserver creates a log based observer
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{logger: log}
}

// Progress implements ProgressObserver
func (o *LogObserver) Progress(index, total int, ticker contracts.TickerSymbol) {
	o.logger.WithFields(map[string]interface{}{
		"index":  index + 1,
		"total":  total,
		"ticker": ticker,
	}).Infof("(%d / %d) Processing ticker %s", index+1, total, ticker)
}

// BarObserver renders a terminal progress bar
type BarObserver struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBarObserver creates a progress bar observer writing to out
func NewBarObserver(out io.Writer) *BarObserver {
	return &BarObserver{out: out}
}

// Progress implements ProgressObserver
func (o *BarObserver) Progress(index, total int, ticker contracts.TickerSymbol) {
	if o.bar == nil || index == 0 {
		o.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(o.out),
			progressbar.OptionSetDescription(ticker),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	o.bar.Describe(ticker)
	_ = o.bar.Set(index + 1)
	if index+1 >= total {
		_ = o.bar.Finish()
	}
}

// multiObserver fans a notification out to several observers
type multiObserver []ProgressObserver

func (m multiObserver) Progress(index, total int, ticker contracts.TickerSymbol) {
	for _, o := range m {
		o.Progress(index, total, ticker)
	}
}
