package s2_returns

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

// PctChanges returns the period-over-period percentage changes.
// The first period has no prior and is skipped. A 0/0 change is NaN and is
// skipped too; a zero prior under a non-zero close is kept as ±Inf.
func PctChanges(periods []Period) []float64 {
	if len(periods) < 2 {
		return nil
	}

	changes := make([]float64, 0, len(periods)-1)
	for i := 1; i < len(periods); i++ {
		prior := periods[i-1].Close
		change := (periods[i].Close - prior) / prior * 100
		if math.IsNaN(change) {
			continue
		}
		changes = append(changes, change)
	}
	return changes
}

// ComputeLatestReturn returns the latest percentage return of the series for
// one horizon, rounded to two decimals. It returns ErrComputationUndefined when
// the series has fewer than two periods, no defined change, or a latest change
// divided by a zero prior close.
// ⭐ SSOT: 수익률 계산은 이 함수에서만
func ComputeLatestReturn(series contracts.TimeSeries, h contracts.Horizon) (float64, error) {
	periods, err := Resample(series, h)
	if err != nil {
		return math.NaN(), err
	}
	if len(periods) < 2 {
		return math.NaN(), fmt.Errorf("%w: %s needs 2 periods, have %d", contracts.ErrComputationUndefined, h, len(periods))
	}

	changes := PctChanges(periods)
	if len(changes) == 0 {
		return math.NaN(), fmt.Errorf("%w: %s has no defined change", contracts.ErrComputationUndefined, h)
	}

	latest := changes[len(changes)-1]
	if math.IsInf(latest, 0) {
		return math.NaN(), fmt.Errorf("%w: %s latest change has a zero prior close", contracts.ErrComputationUndefined, h)
	}

	return round2(latest), nil
}

// LatestReturn is ComputeLatestReturn with the error folded into NaN
func LatestReturn(series contracts.TimeSeries, h contracts.Horizon) float64 {
	v, err := ComputeLatestReturn(series, h)
	if err != nil {
		return math.NaN()
	}
	return v
}

// round2 rounds to two decimals the way numpy.round does: v is scaled by 100 in
// float64, rounded half to even and scaled back. 0.125 gives 0.12, and 1.005
// (scaled to 100.4999...) gives 1.0. v must be finite.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v * 100).RoundBank(0).Shift(-2).Float64()
	return f
}
