package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rianlucascs/dowtrend/internal/contracts"
	"github.com/rianlucascs/dowtrend/internal/store"
)

// Direction selects the end of the ranking
type Direction int

const (
	// Gain ranks the largest returns first (valorização)
	Gain Direction = iota
	// Loss ranks the smallest returns first (desvalorização)
	Loss
)

func (d Direction) String() string {
	if d == Loss {
		return "loss"
	}
	return "gain"
}

// ParseDirection accepts gain/loss and the Portuguese labels
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gain", "valorizacao", "valorização":
		return Gain, nil
	case "loss", "desvalorizacao", "desvalorização":
		return Loss, nil
	default:
		return Gain, fmt.Errorf("unknown direction %q", s)
	}
}

// Entry is one ranked ticker
type Entry struct {
	Rank   int
	Ticker contracts.TickerSymbol
	Value  float64
}

// Top ranks the table by one horizon and keeps the first n rows.
// NaN values always come last; n <= 0 keeps every row.
func Top(table *store.Table, h contracts.Horizon, dir Direction, n int) []Entry {
	values := table.Column(h)
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := values[idx[a]], values[idx[b]]
		if math.IsNaN(va) || math.IsNaN(vb) {
			return !math.IsNaN(va) && math.IsNaN(vb)
		}
		if dir == Loss {
			return va < vb
		}
		return va > vb
	})

	if n <= 0 || n > len(idx) {
		n = len(idx)
	}

	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{
			Rank:   i + 1,
			Ticker: table.Tickers[idx[i]],
			Value:  values[idx[i]],
		}
	}
	return entries
}
