package s2_returns

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

type obs struct {
	date  string
	price float64
}

func seriesOf(t *testing.T, points ...obs) contracts.TimeSeries {
	t.Helper()
	out := make([]contracts.PricePoint, 0, len(points))
	for _, p := range points {
		d, err := time.Parse("2006-01-02", p.date)
		require.NoError(t, err)
		out = append(out, contracts.PricePoint{Date: d, AdjustedClose: p.price})
	}
	return contracts.NewTimeSeries(out)
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestResample_Labels(t *testing.T) {
	tests := []struct {
		name    string
		horizon contracts.Horizon
		points  []obs
		want    []Period
	}{
		{
			name:    "weekly closes on sunday",
			horizon: contracts.Weekly,
			points:  []obs{{"2024-01-01", 10}, {"2024-01-05", 11}, {"2024-01-07", 11.5}, {"2024-01-08", 12}},
			want:    []Period{{Label: date("2024-01-07"), Close: 11.5}, {Label: date("2024-01-14"), Close: 12}},
		},
		{
			name:    "biweekly windows start at first observation",
			horizon: contracts.Biweekly,
			points:  []obs{{"2024-01-03", 100}, {"2024-01-17", 110}, {"2024-01-18", 121}, {"2024-02-02", 130}},
			want: []Period{
				{Label: date("2024-01-03"), Close: 110},
				{Label: date("2024-01-18"), Close: 121},
				{Label: date("2024-02-02"), Close: 130},
			},
		},
		{
			name:    "monthly labels month end",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-30", 1}, {"2024-02-01", 2}, {"2024-02-29", 3}},
			want:    []Period{{Label: date("2024-01-31"), Close: 1}, {Label: date("2024-02-29"), Close: 3}},
		},
		{
			name:    "quarterly labels quarter end",
			horizon: contracts.Quarterly,
			points:  []obs{{"2024-03-28", 100}, {"2024-04-01", 101}, {"2024-06-28", 105}, {"2024-10-01", 110}},
			want: []Period{
				{Label: date("2024-03-31"), Close: 100},
				{Label: date("2024-06-30"), Close: 105},
				{Label: date("2024-12-31"), Close: 110},
			},
		},
		{
			name:    "annual labels year end",
			horizon: contracts.Annual,
			points:  []obs{{"2022-12-29", 50}, {"2023-06-01", 45}, {"2023-12-28", 40}, {"2024-01-03", 44}},
			want: []Period{
				{Label: date("2022-12-31"), Close: 50},
				{Label: date("2023-12-31"), Close: 40},
				{Label: date("2024-12-31"), Close: 44},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(seriesOf(t, tt.points...), tt.horizon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResample_EmptyAndInvalid(t *testing.T) {
	got, err := Resample(contracts.TimeSeries{}, contracts.Monthly)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Resample(contracts.TimeSeries{}, contracts.Horizon(42))
	assert.True(t, errors.Is(err, contracts.ErrComputationUndefined))
}

func TestComputeLatestReturn(t *testing.T) {
	tests := []struct {
		name    string
		horizon contracts.Horizon
		points  []obs
		want    float64
	}{
		{
			name:    "weekly",
			horizon: contracts.Weekly,
			points:  []obs{{"2024-01-01", 10}, {"2024-01-05", 11}, {"2024-01-08", 12}, {"2024-01-12", 13.2}},
			want:    20,
		},
		{
			name:    "biweekly",
			horizon: contracts.Biweekly,
			points:  []obs{{"2024-01-01", 100}, {"2024-01-15", 110}, {"2024-01-16", 121}},
			want:    10,
		},
		{
			name:    "monthly rounds to two decimals",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-31", 3}, {"2024-02-15", 4}},
			want:    33.33,
		},
		{
			name:    "quarterly",
			horizon: contracts.Quarterly,
			points:  []obs{{"2024-03-28", 100}, {"2024-06-28", 105}},
			want:    5,
		},
		{
			name:    "annual uses latest pair",
			horizon: contracts.Annual,
			points:  []obs{{"2022-12-29", 50}, {"2023-12-28", 40}, {"2024-01-03", 44}},
			want:    10,
		},
		{
			name:    "negative",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-31", 80}, {"2024-02-29", 60}},
			want:    -25,
		},
		{
			name:    "0/0 latest change falls back to the earlier one",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-31", 10}, {"2024-02-29", 0}, {"2024-03-29", 0}},
			want:    -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLatestReturn(seriesOf(t, tt.points...), tt.horizon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeLatestReturn_Undefined(t *testing.T) {
	tests := []struct {
		name    string
		horizon contracts.Horizon
		points  []obs
	}{
		{name: "empty series", horizon: contracts.Weekly},
		{name: "single observation", horizon: contracts.Weekly, points: []obs{{"2024-01-02", 10}}},
		{
			name:    "one month end observation",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-02", 10}, {"2024-01-15", 11}, {"2024-01-31", 12}},
		},
		{
			name:    "latest change from zero prior",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-31", 10}, {"2024-02-29", 0}, {"2024-03-29", 5}},
		},
		{
			name:    "only zero prices",
			horizon: contracts.Monthly,
			points:  []obs{{"2024-01-31", 0}, {"2024-02-29", 0}},
		},
		{name: "unknown horizon", horizon: contracts.Horizon(-1), points: []obs{{"2024-01-02", 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLatestReturn(seriesOf(t, tt.points...), tt.horizon)
			assert.True(t, math.IsNaN(got))
			assert.True(t, errors.Is(err, contracts.ErrComputationUndefined), "got %v", err)
			assert.True(t, math.IsNaN(LatestReturn(seriesOf(t, tt.points...), tt.horizon)))
		})
	}
}

// For any series with at least two months the result is the rounded change of the last two month ends
func TestComputeLatestReturn_MatchesLastTwoPeriods(t *testing.T) {
	start := date("2023-01-02")
	points := make([]contracts.PricePoint, 0, 400)
	for i := 0; i < 400; i++ {
		points = append(points, contracts.PricePoint{
			Date:          start.AddDate(0, 0, i),
			AdjustedClose: 50 + 10*math.Sin(float64(i)/17) + float64(i)/40,
		})
	}
	series := contracts.NewTimeSeries(points)

	for _, h := range contracts.Horizons {
		t.Run(h.Key(), func(t *testing.T) {
			periods, err := Resample(series, h)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(periods), 2)

			last, prior := periods[len(periods)-1].Close, periods[len(periods)-2].Close
			got, err := ComputeLatestReturn(series, h)
			require.NoError(t, err)
			assert.Equal(t, round2((last-prior)/prior*100), got)
		})
	}
}

func TestPctChanges_ZeroPrior(t *testing.T) {
	changes := PctChanges([]Period{{Close: 10}, {Close: 0}, {Close: 0}, {Close: 5}})
	require.Len(t, changes, 2)
	assert.Equal(t, -100.0, changes[0])
	assert.True(t, math.IsInf(changes[1], 1))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.12, round2(0.125))
	assert.Equal(t, -0.12, round2(-0.125))
	assert.Equal(t, 0.38, round2(0.375))
	assert.Equal(t, 2.68, round2(2.675))
	assert.Equal(t, 1.0, round2(1.005))
	assert.Equal(t, 33.33, round2(100.0/3))
	assert.Equal(t, 12.0, round2(12))
}
