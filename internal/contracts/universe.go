package contracts

import "time"

// Universe is the ordered ticker list resolved for one sample
// ⭐ SSOT: S0 → S3 처리 대상 종목 전달
type Universe struct {
	Sample     SampleSpecifier `json:"-"`
	Tickers    []TickerSymbol  `json:"tickers"`
	ResolvedAt time.Time       `json:"resolved_at"`
}

// Contains checks if a ticker is in the universe
func (u *Universe) Contains(ticker TickerSymbol) bool {
	for _, t := range u.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// Count returns the number of tickers
func (u *Universe) Count() int {
	return len(u.Tickers)
}
