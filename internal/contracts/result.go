package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/guregu/null/v6"
)

// TickerResult holds the latest return of one ticker for every horizon.
// It always has exactly NumHorizons entries; NaN marks an undefined return.
type TickerResult struct {
	values [NumHorizons]float64
}

// NewTickerResult returns a result with every horizon set to NaN
func NewTickerResult() TickerResult {
	var r TickerResult
	for i := range r.values {
		r.values[i] = math.NaN()
	}
	return r
}

// Get returns the value of horizon h
func (r TickerResult) Get(h Horizon) float64 {
	if !h.Valid() {
		return math.NaN()
	}
	return r.values[h]
}

// Set stores v for horizon h; non-finite values are stored as NaN
func (r *TickerResult) Set(h Horizon, v float64) {
	if !h.Valid() {
		return
	}
	if math.IsInf(v, 0) {
		v = math.NaN()
	}
	r.values[h] = v
}

// Values returns the values in canonical horizon order
func (r TickerResult) Values() [NumHorizons]float64 {
	return r.values
}

// AllUndefined reports whether every horizon is NaN
func (r TickerResult) AllUndefined() bool {
	for _, v := range r.values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Equal compares values numerically, treating NaN as equal to NaN
func (r TickerResult) Equal(other TickerResult) bool {
	for i := range r.values {
		a, b := r.values[i], other.values[i]
		if math.IsNaN(a) && math.IsNaN(b) {
			continue
		}
		if a != b {
			return false
		}
	}
	return true
}

// tickerResultJSON is the persisted shape; NaN is written as null
type tickerResultJSON struct {
	Weekly    null.Float `json:"semanal"`
	Biweekly  null.Float `json:"quinzenal"`
	Monthly   null.Float `json:"mensal"`
	Quarterly null.Float `json:"trimestral"`
	Annual    null.Float `json:"anual"`
}

func nullable(v float64) null.Float {
	return null.NewFloat(v, !math.IsNaN(v) && !math.IsInf(v, 0))
}

func fromNullable(f null.Float) float64 {
	if !f.Valid {
		return math.NaN()
	}
	return f.Float64
}

// MarshalJSON writes the five horizon keys in canonical order
func (r TickerResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(tickerResultJSON{
		Weekly:    nullable(r.values[Weekly]),
		Biweekly:  nullable(r.values[Biweekly]),
		Monthly:   nullable(r.values[Monthly]),
		Quarterly: nullable(r.values[Quarterly]),
		Annual:    nullable(r.values[Annual]),
	})
}

// UnmarshalJSON reads the five horizon keys; a missing or null key becomes NaN
func (r *TickerResult) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("ticker result must be an object")
	}
	var raw tickerResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.values = [NumHorizons]float64{
		fromNullable(raw.Weekly),
		fromNullable(raw.Biweekly),
		fromNullable(raw.Monthly),
		fromNullable(raw.Quarterly),
		fromNullable(raw.Annual),
	}
	return nil
}

// ResultMap maps ticker symbols to their results, remembering insertion order.
// Order is kept for output only; lookups and equality are key addressed.
// The run id names the batch that produced the map; it is not part of the JSON.
// ⭐ SSOT: 저장/로드 단위는 이 타입
type ResultMap struct {
	order []TickerSymbol
	items map[TickerSymbol]TickerResult
	runID uuid.UUID
}

// NewResultMap creates an empty map sized for n tickers
func NewResultMap(n int) *ResultMap {
	return &ResultMap{
		order: make([]TickerSymbol, 0, n),
		items: make(map[TickerSymbol]TickerResult, n),
	}
}

// RunID returns the id of the producing run, uuid.Nil when unknown
func (m *ResultMap) RunID() uuid.UUID {
	return m.runID
}

// SetRunID records the id of the producing run
func (m *ResultMap) SetRunID(id uuid.UUID) {
	m.runID = id
}

// Set inserts or replaces the result of ticker. A replaced ticker keeps its position.
func (m *ResultMap) Set(ticker TickerSymbol, result TickerResult) {
	if m.items == nil {
		m.items = make(map[TickerSymbol]TickerResult)
	}
	if _, exists := m.items[ticker]; !exists {
		m.order = append(m.order, ticker)
	}
	m.items[ticker] = result
}

// Get returns the result of ticker
func (m *ResultMap) Get(ticker TickerSymbol) (TickerResult, bool) {
	r, ok := m.items[ticker]
	return r, ok
}

// Len returns the number of tickers
func (m *ResultMap) Len() int {
	return len(m.order)
}

// Tickers returns the tickers in insertion order
func (m *ResultMap) Tickers() []TickerSymbol {
	out := make([]TickerSymbol, len(m.order))
	copy(out, m.order)
	return out
}

// Equal reports whether both maps hold the same keys with equal results
func (m *ResultMap) Equal(other *ResultMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.items) != len(other.items) {
		return false
	}
	for ticker, r := range m.items {
		o, ok := other.items[ticker]
		if !ok || !r.Equal(o) {
			return false
		}
	}
	return true
}

// MarshalJSON writes a JSON object in insertion order
func (m *ResultMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ticker := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ticker)
		if err != nil {
			return nil, err
		}
		val, err := m.items[ticker].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("ticker %s: %w", ticker, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the order of its keys
func (m *ResultMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("result map must be a JSON object")
	}

	out := NewResultMap(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		ticker, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}
		var r TickerResult
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("ticker %s: %w", ticker, err)
		}
		out.Set(ticker, r)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = *out
	return nil
}
