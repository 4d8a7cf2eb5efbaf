// Package advisor computes suggested watchlist thresholds from price history.
package advisor

import (
	"context"
	"fmt"
	"math"

	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// Method selects the threshold calculation strategy
type Method string

const (
	MethodPercentage    Method = "percentage"
	MethodVolatility    Method = "volatility"
	MethodMovingAverage Method = "moving_average"
)

const (
	// DefaultPercent is the band width used when the model gives no percentage
	DefaultPercent = 5.0

	// DefaultLookbackDays is the history window for the statistical methods
	DefaultLookbackDays = 30

	minReturnObservations = 5
	movingAveragePeriod   = 20
	tradingDaysPerYear    = 252
)

// Suggestion is an ephemeral threshold recommendation. It is never stored;
// callers either display it or fold it straight into a watchlist add.
type Suggestion struct {
	Symbol       string
	CurrentPrice float64
	Method       Method
	Low          float64
	High         float64
	Reasoning    string

	// Diagnostics, populated per method
	AnnualizedVolatilityPct float64 // volatility only
	MovingAverage           float64 // moving_average only
}

// String renders the suggestion for the model
func (s *Suggestion) String() string {
	text := fmt.Sprintf("Suggested thresholds for %s (%s): Low=%.2f, High=%.2f (current price $%.2f). %s",
		s.Symbol, s.Method, s.Low, s.High, s.CurrentPrice, s.Reasoning)
	return text
}

// Suggest computes low/high thresholds for symbol using the given method.
// pct only applies to the percentage method; pass 0 for the default.
// Errors are descriptive and name the symbol; the tool layer surfaces them
// to the model verbatim.
func Suggest(ctx context.Context, src market.Source, symbol string, method Method, pct float64) (*Suggestion, error) {
	symbol = watchlist.Normalize(symbol)

	switch method {
	case MethodPercentage:
		return suggestPercentage(ctx, src, symbol, pct)
	case MethodVolatility:
		return suggestVolatility(ctx, src, symbol)
	case MethodMovingAverage:
		return suggestMovingAverage(ctx, src, symbol)
	default:
		return nil, fmt.Errorf("unknown method %q: valid methods are %s, %s, %s",
			method, MethodPercentage, MethodVolatility, MethodMovingAverage)
	}
}

func suggestPercentage(ctx context.Context, src market.Source, symbol string, pct float64) (*Suggestion, error) {
	if pct <= 0 {
		pct = DefaultPercent
	}

	price, err := src.Price(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("could not fetch price for %s: %w", symbol, err)
	}

	return &Suggestion{
		Symbol:       symbol,
		CurrentPrice: price,
		Method:       MethodPercentage,
		Low:          round2(price * (1 - pct/100)),
		High:         round2(price * (1 + pct/100)),
		Reasoning:    fmt.Sprintf("Band of ±%g%% around the current price.", pct),
	}, nil
}

func suggestVolatility(ctx context.Context, src market.Source, symbol string) (*Suggestion, error) {
	price, err := src.Price(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("could not fetch price for %s: %w", symbol, err)
	}

	bars, err := src.History(ctx, symbol, DefaultLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("could not fetch history for %s: %w", symbol, err)
	}

	returns := dailyReturns(market.Closes(bars))
	if len(returns) < minReturnObservations {
		return nil, fmt.Errorf("insufficient data for %s: need at least %d daily returns, got %d",
			symbol, minReturnObservations, len(returns))
	}

	sigma := stdDev(returns)
	annualized := round2(sigma * math.Sqrt(tradingDaysPerYear) * 100)

	return &Suggestion{
		Symbol:                  symbol,
		CurrentPrice:            price,
		Method:                  MethodVolatility,
		Low:                     round2(price - price*sigma),
		High:                    round2(price + price*sigma),
		AnnualizedVolatilityPct: annualized,
		Reasoning: fmt.Sprintf("One standard deviation of daily returns over %d days (annualized volatility %.2f%%).",
			DefaultLookbackDays, annualized),
	}, nil
}

func suggestMovingAverage(ctx context.Context, src market.Source, symbol string) (*Suggestion, error) {
	price, err := src.Price(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("could not fetch price for %s: %w", symbol, err)
	}

	bars, err := src.History(ctx, symbol, DefaultLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("could not fetch history for %s: %w", symbol, err)
	}

	closes := market.Closes(bars)
	if len(closes) < movingAveragePeriod {
		return nil, fmt.Errorf("insufficient data for %s: need at least %d price observations, got %d",
			symbol, movingAveragePeriod, len(closes))
	}

	ma := mean(closes[len(closes)-movingAveragePeriod:])
	band := 1.5 * math.Abs(price-ma)

	return &Suggestion{
		Symbol:        symbol,
		CurrentPrice:  price,
		Method:        MethodMovingAverage,
		Low:           round2(price - band),
		High:          round2(price + band),
		MovingAverage: round2(ma),
		Reasoning: fmt.Sprintf("Band of 1.5x the distance to the %d-day moving average ($%.2f).",
			movingAveragePeriod, ma),
	}, nil
}

// dailyReturns computes simple day-over-day returns, oldest first.
// Bars with a zero previous close are skipped.
func dailyReturns(closes []float64) []float64 {
	var returns []float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the sample standard deviation
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
