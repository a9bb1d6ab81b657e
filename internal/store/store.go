package store

import (
	"errors"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

// ErrNotFound is returned by Load when nothing was saved for the sample
var ErrNotFound = errors.New("results not found")

// Backend is a named result store
type Backend interface {
	contracts.ResultStore
	Name() string
}
