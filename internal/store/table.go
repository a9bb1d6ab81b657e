package store

import (
	"encoding/json"
	"math"

	"github.com/guregu/null/v6"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

// Table is the tabular view of a result map: one row per ticker in file order,
// one column per horizon in canonical order
type Table struct {
	Tickers []contracts.TickerSymbol
	Rows    [][contracts.NumHorizons]float64
}

// Columns returns the horizons in column order
func (t *Table) Columns() [contracts.NumHorizons]contracts.Horizon {
	return contracts.Horizons
}

// NewTable builds the tabular view of results
func NewTable(results *contracts.ResultMap) *Table {
	tickers := results.Tickers()
	t := &Table{
		Tickers: tickers,
		Rows:    make([][contracts.NumHorizons]float64, len(tickers)),
	}
	for i, ticker := range tickers {
		r, _ := results.Get(ticker)
		t.Rows[i] = r.Values()
	}
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Tickers)
}

// Column returns the values of one horizon, row aligned
func (t *Table) Column(h contracts.Horizon) []float64 {
	col := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if h.Valid() {
			col[i] = row[h]
		} else {
			col[i] = math.NaN()
		}
	}
	return col
}

type tableRowJSON struct {
	Ticker string       `json:"ticker"`
	Values []null.Float `json:"values"`
}

type tableJSON struct {
	Columns []string       `json:"columns"`
	Rows    []tableRowJSON `json:"rows"`
}

// MarshalJSON writes {"columns": [...], "rows": [{"ticker": ..., "values": [...]}]} with NaN as null
func (t *Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{
		Columns: make([]string, 0, contracts.NumHorizons),
		Rows:    make([]tableRowJSON, len(t.Rows)),
	}
	for _, h := range contracts.Horizons {
		out.Columns = append(out.Columns, h.Key())
	}
	for i, row := range t.Rows {
		values := make([]null.Float, len(row))
		for j, v := range row {
			values[j] = null.NewFloat(v, !math.IsNaN(v) && !math.IsInf(v, 0))
		}
		out.Rows[i] = tableRowJSON{Ticker: t.Tickers[i], Values: values}
	}
	return json.Marshal(out)
}
