package s3_batch

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/s2_returns"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.Universe, error) {
	args := m.Called(ctx, spec)
	u, _ := args.Get(0).(*contracts.Universe)
	return u, args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, ticker contracts.TickerSymbol) contracts.TimeSeries {
	args := m.Called(ctx, ticker)
	series, _ := args.Get(0).(contracts.TimeSeries)
	return series
}

type recordingObserver struct {
	calls []string
	idx   []int
	total []int
}

func (o *recordingObserver) Progress(index, total int, ticker contracts.TickerSymbol) {
	o.calls = append(o.calls, ticker)
	o.idx = append(o.idx, index)
	o.total = append(o.total, total)
}

func dailySeries(days int) contracts.TimeSeries {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]contracts.PricePoint, 0, days)
	for i := 0; i < days; i++ {
		points = append(points, contracts.PricePoint{
			Date:          start.AddDate(0, 0, i),
			AdjustedClose: 20 + float64(i%37) + float64(i)/10,
		})
	}
	return contracts.NewTimeSeries(points)
}

func universeOf(spec contracts.SampleSpecifier, tickers ...string) *contracts.Universe {
	return &contracts.Universe{Sample: spec, Tickers: tickers, ResolvedAt: time.Now()}
}

func TestRunner_Run_IsolatesFailedTicker(t *testing.T) {
	spec := contracts.ListedCompanies()
	series := dailySeries(400)

	res := &mockResolver{}
	res.On("Resolve", mock.Anything, spec).Return(universeOf(spec, "AAA3", "BBB4"), nil).Once()

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "AAA3").Return(series).Once()
	f.On("Fetch", mock.Anything, "BBB4").Return(contracts.TimeSeries{}).Once()

	obs := &recordingObserver{}
	runner := NewRunner(res, s2_returns.NewProcessor(f, logger.Nop()), logger.Nop(), obs)

	results, err := runner.Run(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, []contracts.TickerSymbol{"AAA3", "BBB4"}, results.Tickers())

	aaa, ok := results.Get("AAA3")
	require.True(t, ok)
	for _, h := range contracts.Horizons {
		assert.Equal(t, s2_returns.LatestReturn(series, h), aaa.Get(h), h.Key())
		assert.False(t, math.IsNaN(aaa.Get(h)), h.Key())
	}

	bbb, ok := results.Get("BBB4")
	require.True(t, ok)
	assert.True(t, bbb.AllUndefined())

	assert.Equal(t, []string{"AAA3", "BBB4"}, obs.calls)
	assert.Equal(t, []int{0, 1}, obs.idx)
	assert.Equal(t, []int{2, 2}, obs.total)

	res.AssertNumberOfCalls(t, "Resolve", 1)
	f.AssertExpectations(t)
}

func TestRunner_Run_TagsResultsWithRunID(t *testing.T) {
	var buf bytes.Buffer
	spec := contracts.ListedCompanies()

	res := &mockResolver{}
	res.On("Resolve", mock.Anything, spec).Return(universeOf(spec, "AAA3"), nil).Once()
	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "AAA3").Return(dailySeries(40)).Once()

	runner := NewRunner(res, s2_returns.NewProcessor(f, logger.Nop()), logger.NewWithWriter(&buf, "info", "json"))
	results, err := runner.Run(context.Background(), spec)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, results.RunID())
	assert.Contains(t, buf.String(), `"run_id":"`+results.RunID().String()+`"`)
}

func TestRunner_Run_ResolveFailureAborts(t *testing.T) {
	spec, err := contracts.Index("IDIV")
	require.NoError(t, err)

	res := &mockResolver{}
	res.On("Resolve", mock.Anything, spec).Return(nil, contracts.ErrDataSourceUnavailable)
	f := &mockFetcher{}

	results, err := NewRunner(res, s2_returns.NewProcessor(f, logger.Nop()), logger.Nop()).Run(context.Background(), spec)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, contracts.ErrDataSourceUnavailable))
	f.AssertNumberOfCalls(t, "Fetch", 0)
}

func TestRunner_Run_InvalidSpecifierBeforeFetch(t *testing.T) {
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, mock.Anything).Return(nil, contracts.ErrInvalidSpecifier)
	f := &mockFetcher{}

	var zero contracts.SampleSpecifier
	_, err := NewRunner(res, s2_returns.NewProcessor(f, logger.Nop()), logger.Nop()).Run(context.Background(), zero)
	assert.True(t, errors.Is(err, contracts.ErrInvalidSpecifier))
	f.AssertNumberOfCalls(t, "Fetch", 0)
}

func TestRunner_Run_EmptyUniverse(t *testing.T) {
	spec := contracts.ListedCompanies()
	res := &mockResolver{}
	res.On("Resolve", mock.Anything, spec).Return(universeOf(spec), nil)

	results, err := NewRunner(res, s2_returns.NewProcessor(&mockFetcher{}, logger.Nop()), logger.Nop()).Run(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, 0, results.Len())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	spec := contracts.ListedCompanies()
	ctx, cancel := context.WithCancel(context.Background())

	res := &mockResolver{}
	res.On("Resolve", mock.Anything, spec).Return(universeOf(spec, "AAA3", "BBB4", "CCC3"), nil)

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "AAA3").Run(func(mock.Arguments) { cancel() }).Return(contracts.TimeSeries{})

	results, err := NewRunner(res, s2_returns.NewProcessor(f, logger.Nop()), logger.Nop()).Run(ctx, spec)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, context.Canceled))
	f.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestLogObserver_Progress(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(logger.NewWithWriter(&buf, "info", "json"))

	obs.Progress(0, 3, "PETR4")

	assert.Contains(t, buf.String(), "(1 / 3) Processing ticker PETR4")
	assert.Contains(t, buf.String(), `"ticker":"PETR4"`)
}

func TestBarObserver_Progress(t *testing.T) {
	var buf bytes.Buffer
	obs := NewBarObserver(&buf)

	obs.Progress(0, 2, "AAA3")
	obs.Progress(1, 2, "BBB4")

	require.NotNil(t, obs.bar)
	assert.True(t, obs.bar.IsFinished())
}
