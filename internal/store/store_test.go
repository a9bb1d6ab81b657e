package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

func resultOf(values ...float64) contracts.TickerResult {
	r := contracts.NewTickerResult()
	for i, v := range values {
		r.Set(contracts.Horizons[i], v)
	}
	return r
}

func sampleResults() *contracts.ResultMap {
	m := contracts.NewResultMap(3)
	m.Set("PETR4", resultOf(1.5, -2.25, 3.1, 10, -0.01))
	m.Set("VALE3", resultOf(math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()))
	m.Set("BBAS3", resultOf(0, 4.44, math.NaN(), 7, 12.5))
	return m
}

func indexSpec(t *testing.T, code string) contracts.SampleSpecifier {
	t.Helper()
	spec, err := contracts.Index(code)
	require.NoError(t, err)
	return spec
}
