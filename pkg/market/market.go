// Package market defines the price data source contract and its implementations
package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one daily close in a historical price series
type Bar struct {
	Date  time.Time
	Close decimal.Decimal
}

// Source provides current and historical prices for ticker symbols.
// Any failure (network, unknown symbol, empty series) is reported as an
// error; callers at the tool boundary convert it to an "unavailable"
// message rather than letting it escape.
type Source interface {
	// Price returns the current price for symbol, rounded to 2 decimals
	Price(ctx context.Context, symbol string) (float64, error)

	// History returns up to days daily bars for symbol, oldest first.
	// The series may be shorter than requested.
	History(ctx context.Context, symbol string, days int) ([]Bar, error)
}

// Closes extracts the close prices from a bar series as floats, oldest first
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close.InexactFloat64()
	}
	return closes
}
