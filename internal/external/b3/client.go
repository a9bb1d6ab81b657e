package b3

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rianlucascs/dowtrend/pkg/config"
	"github.com/rianlucascs/dowtrend/pkg/httputil"
	"github.com/rianlucascs/dowtrend/pkg/logger"
)

const (
	listedCodeColumn = "codigo_de_negociacao"
	indexCodeColumn  = "Código"
)

// ErrMissingColumn is returned when a universe table lacks its code column
var ErrMissingColumn = errors.New("required column missing")

// Client downloads ticker universes published as CSV tables
// ⭐ SSOT: B3 종목 목록 CSV 호출은 이 클라이언트에서만
type Client struct {
	httpClient       *httputil.Client
	logger           *logger.Logger
	listedURL        string
	indexURLTemplate string
}

// NewClient creates a new universe client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.B3Config) *Client {
	return &Client{
		httpClient:       httpClient,
		logger:           log,
		listedURL:        cfg.ListedURL,
		indexURLTemplate: cfg.IndexURLTemplate,
	}
}

type listedCompanyRow struct {
	Code string `csv:"codigo_de_negociacao"`
}

type indexConstituentRow struct {
	Code string `csv:"Código"`
}

// IndexURL returns the constituents table URL for an index code.
// The template is already percent-encoded, so only the literal %s markers are replaced.
func (c *Client) IndexURL(code string) string {
	return strings.ReplaceAll(c.indexURLTemplate, "%s", code)
}

// ListedCompanies returns the trading codes of every listed company in source order.
// Rows without a code are dropped.
func (c *Client) ListedCompanies(ctx context.Context) ([]string, error) {
	body, err := c.httpClient.GetBody(ctx, c.listedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listed companies: %w", err)
	}

	var rows []*listedCompanyRow
	if err := decode(body, ';', listedCodeColumn, &rows); err != nil {
		return nil, fmt.Errorf("decode listed companies: %w", err)
	}

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		if code := strings.TrimSpace(row.Code); code != "" {
			codes = append(codes, code)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"source": "listed_companies",
		"count":  len(codes),
	}).Debug("Universe table downloaded")

	return codes, nil
}

// IndexConstituents returns the trading codes of one index in source order
func (c *Client) IndexConstituents(ctx context.Context, code string) ([]string, error) {
	body, err := c.httpClient.GetBody(ctx, c.IndexURL(code))
	if err != nil {
		return nil, fmt.Errorf("fetch index %s: %w", code, err)
	}

	var rows []*indexConstituentRow
	if err := decode(body, ',', indexCodeColumn, &rows); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", code, err)
	}

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		if ticker := strings.TrimSpace(row.Code); ticker != "" {
			codes = append(codes, ticker)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"source": "index",
		"index":  code,
		"count":  len(codes),
	}).Debug("Universe table downloaded")

	return codes, nil
}

// decode unmarshals a delimited table into out after checking that column exists
func decode(body []byte, delimiter rune, column string, out interface{}) error {
	r := csv.NewReader(bytes.NewReader(body))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	hr := &headerReader{reader: r}
	if err := gocsv.UnmarshalCSV(hr, out); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return fmt.Errorf("%w: %s (empty table)", ErrMissingColumn, column)
		}
		return err
	}

	if !hr.has(column) {
		return fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}
	return nil
}

// headerReader normalizes the header row and remembers it
type headerReader struct {
	reader *csv.Reader
	header []string
}

func (h *headerReader) Read() ([]string, error) {
	record, err := h.reader.Read()
	if err != nil {
		return nil, err
	}
	if h.header == nil {
		record = normalizeHeader(record)
		h.header = record
	}
	return record, nil
}

func (h *headerReader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := h.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func (h *headerReader) has(column string) bool {
	for _, name := range h.header {
		if name == column {
			return true
		}
	}
	return false
}

func normalizeHeader(record []string) []string {
	out := make([]string, len(record))
	for i, name := range record {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = strings.TrimSpace(name)
	}
	return out
}
