package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rianlucascs/dowtrend/pkg/config"
	"github.com/rianlucascs/dowtrend/pkg/httputil"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

var (
	// ErrNoData is returned when the chart response holds no usable price
	ErrNoData = errors.New("no price data returned")
	// ErrAPI is returned when the chart response carries an error object
	ErrAPI = errors.New("chart api error")
)

// Client fetches daily price history from the Yahoo Finance chart API
// ⭐ SSOT: 가격 이력 외부 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	suffix     string
}

// NewClient creates a new Yahoo chart client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.YahooConfig) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		suffix:     cfg.ExchangeSuffix,
	}
}

// DailyClose is one trading day of adjusted close
type DailyClose struct {
	Date          time.Time
	AdjustedClose float64
}

// chartResponse is the subset of the v8 chart payload we read
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int    `json:"gmtoffset"`
				Timezone  string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Symbol returns the provider symbol for a raw ticker
func (c *Client) Symbol(ticker string) string {
	return ticker + c.suffix
}

// ChartURL builds the full-history daily chart URL for a raw ticker
func (c *Client) ChartURL(ticker string) string {
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1d")
	q.Set("events", "div,split")
	q.Set("includeAdjustedClose", "true")

	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(c.Symbol(ticker)), q.Encode())
}

// FetchAdjustedClose returns the whole available daily history of a ticker,
// ascending by date. Adjusted close is used when present, raw close otherwise.
func (c *Client) FetchAdjustedClose(ctx context.Context, ticker string) ([]DailyClose, error) {
	body, err := c.httpClient.GetBody(ctx, c.ChartURL(ticker))
	if err != nil {
		return nil, fmt.Errorf("fetch chart %s: %w", c.Symbol(ticker), err)
	}

	closes, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart %s: %w", c.Symbol(ticker), err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": c.Symbol(ticker),
		"points": len(closes),
	}).Debug("Price history downloaded")

	return closes, nil
}

func parseChart(body []byte) ([]DailyClose, error) {
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrAPI, chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]

	var values []*float64
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		values = result.Indicators.AdjClose[0].AdjClose
	} else if len(result.Indicators.Quote) > 0 {
		values = result.Indicators.Quote[0].Close
	}

	loc := time.FixedZone("exchange", result.Meta.GMTOffset)
	byDate := make(map[time.Time]float64, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(values) || values[i] == nil {
			continue // holidays and halted sessions come back as null
		}
		v := *values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		local := time.Unix(ts, 0).In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
		byDate[day] = v
	}

	if len(byDate) == 0 {
		return nil, ErrNoData
	}

	closes := make([]DailyClose, 0, len(byDate))
	for day, v := range byDate {
		closes = append(closes, DailyClose{Date: day, AdjustedClose: v})
	}
	sort.Slice(closes, func(i, j int) bool { return closes[i].Date.Before(closes[j].Date) })

	return closes, nil
}
