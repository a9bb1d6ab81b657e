package contracts

import "fmt"

// Horizon is one of the five return measurement periods
type Horizon int

const (
	Weekly Horizon = iota
	Biweekly
	Monthly
	Quarterly
	Annual
)

// NumHorizons is the fixed number of horizons in every TickerResult
const NumHorizons = 5

// Horizons lists every horizon in canonical order
var Horizons = [NumHorizons]Horizon{Weekly, Biweekly, Monthly, Quarterly, Annual}

var horizonKeys = [NumHorizons]string{"semanal", "quinzenal", "mensal", "trimestral", "anual"}

// Key returns the persisted key of the horizon ("semanal", "quinzenal", ...)
func (h Horizon) Key() string {
	if !h.Valid() {
		return fmt.Sprintf("horizon(%d)", int(h))
	}
	return horizonKeys[h]
}

func (h Horizon) String() string {
	return h.Key()
}

// Valid reports whether h is one of the five horizons
func (h Horizon) Valid() bool {
	return h >= Weekly && h <= Annual
}

// ParseHorizon accepts the persisted key or the English name
func ParseHorizon(s string) (Horizon, error) {
	switch s {
	case "semanal", "weekly":
		return Weekly, nil
	case "quinzenal", "biweekly":
		return Biweekly, nil
	case "mensal", "monthly":
		return Monthly, nil
	case "trimestral", "quarterly":
		return Quarterly, nil
	case "anual", "annual":
		return Annual, nil
	default:
		return 0, fmt.Errorf("unknown horizon %q", s)
	}
}
