package s2_returns

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, ticker contracts.TickerSymbol) contracts.TimeSeries {
	args := m.Called(ctx, ticker)
	series, _ := args.Get(0).(contracts.TimeSeries)
	return series
}

func TestProcessor_Process_FetchesOnce(t *testing.T) {
	series := seriesOf(t,
		obs{"2023-12-28", 40},
		obs{"2024-03-28", 42},
		obs{"2024-04-10", 44},
		obs{"2024-04-17", 45},
		obs{"2024-04-22", 44.1},
	)

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "AAA3").Return(series).Once()

	result := NewProcessor(f, logger.Nop()).Process(context.Background(), "AAA3")

	f.AssertNumberOfCalls(t, "Fetch", 1)
	assert.Equal(t, LatestReturn(series, contracts.Weekly), result.Get(contracts.Weekly))
	assert.Equal(t, -2.0, result.Get(contracts.Weekly))
	assert.Equal(t, 10.25, result.Get(contracts.Annual))
	assert.False(t, result.AllUndefined())
}

func TestProcessor_Process_EmptySeries(t *testing.T) {
	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "BBB4").Return(contracts.TimeSeries{}).Once()

	result := NewProcessor(f, logger.Nop()).Process(context.Background(), "BBB4")

	assert.True(t, result.AllUndefined())
	for _, h := range contracts.Horizons {
		assert.True(t, math.IsNaN(result.Get(h)), h.Key())
	}
	f.AssertExpectations(t)
}

func TestProcessor_Process_PartialHorizons(t *testing.T) {
	// Two weeks inside one month: weekly is defined, the others are not
	series := seriesOf(t, obs{"2024-05-06", 10}, obs{"2024-05-13", 11})

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "CCC3").Return(series)

	result := NewProcessor(f, logger.Nop()).Process(context.Background(), "CCC3")

	assert.Equal(t, 10.0, result.Get(contracts.Weekly))
	assert.True(t, math.IsNaN(result.Get(contracts.Biweekly)))
	assert.True(t, math.IsNaN(result.Get(contracts.Monthly)))
	assert.True(t, math.IsNaN(result.Get(contracts.Quarterly)))
	assert.True(t, math.IsNaN(result.Get(contracts.Annual)))
}
