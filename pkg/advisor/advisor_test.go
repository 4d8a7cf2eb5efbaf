package advisor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xinguang/stock-sentinel/pkg/market"
)

// stubSource serves canned prices and history for testing
type stubSource struct {
	price   float64
	history []float64
	err     error
}

func (s *stubSource) Price(ctx context.Context, symbol string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.price, nil
}

func (s *stubSource) History(ctx context.Context, symbol string, days int) ([]market.Bar, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.history) == 0 {
		return nil, fmt.Errorf("no historical data for %s", symbol)
	}
	bars := make([]market.Bar, len(s.history))
	for i, c := range s.history {
		bars[i] = market.Bar{
			Date:  time.Now().AddDate(0, 0, i-len(s.history)),
			Close: decimal.NewFromFloat(c),
		}
	}
	return bars, nil
}

func TestSuggestPercentage(t *testing.T) {
	src := &stubSource{price: 100}

	s, err := Suggest(context.Background(), src, "aapl", MethodPercentage, 5)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	if s.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", s.Symbol)
	}
	if s.Low != 95.0 || s.High != 105.0 {
		t.Errorf("band = (%g, %g), want (95, 105)", s.Low, s.High)
	}
}

func TestSuggestPercentageDefault(t *testing.T) {
	src := &stubSource{price: 200}

	s, err := Suggest(context.Background(), src, "AAPL", MethodPercentage, 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	// Zero percentage falls back to the 5% default
	if s.Low != 190.0 || s.High != 210.0 {
		t.Errorf("band = (%g, %g), want (190, 210)", s.Low, s.High)
	}
}

func TestSuggestVolatility(t *testing.T) {
	// Ten closes alternating +/-1% around 100 give a usable return series
	src := &stubSource{
		price:   100,
		history: []float64{100, 101, 100, 101, 100, 101, 100, 101, 100, 101},
	}

	s, err := Suggest(context.Background(), src, "AAPL", MethodVolatility, 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	if s.Low >= s.High {
		t.Errorf("degenerate band (%g, %g)", s.Low, s.High)
	}
	if s.Low >= 100 || s.High <= 100 {
		t.Errorf("band (%g, %g) does not straddle the current price", s.Low, s.High)
	}
	if s.AnnualizedVolatilityPct <= 0 {
		t.Errorf("annualized volatility diagnostic missing: %g", s.AnnualizedVolatilityPct)
	}
}

func TestSuggestVolatilityInsufficientData(t *testing.T) {
	src := &stubSource{price: 100, history: []float64{100, 101, 102}} // 2 returns

	_, err := Suggest(context.Background(), src, "AAPL", MethodVolatility, 0)
	if err == nil {
		t.Fatal("expected insufficient data error")
	}
	if !strings.Contains(err.Error(), "insufficient data for AAPL") {
		t.Errorf("error = %q", err)
	}
}

func TestSuggestMovingAverage(t *testing.T) {
	history := make([]float64, 25)
	for i := range history {
		history[i] = 100
	}
	src := &stubSource{price: 110, history: history}

	s, err := Suggest(context.Background(), src, "AAPL", MethodMovingAverage, 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	// MA = 100, distance 10, band = price ± 15
	if s.MovingAverage != 100 {
		t.Errorf("moving average = %g, want 100", s.MovingAverage)
	}
	if s.Low != 95.0 || s.High != 125.0 {
		t.Errorf("band = (%g, %g), want (95, 125)", s.Low, s.High)
	}
}

func TestSuggestMovingAverageInsufficientData(t *testing.T) {
	src := &stubSource{price: 100, history: []float64{100, 101, 102, 103}}

	_, err := Suggest(context.Background(), src, "AAPL", MethodMovingAverage, 0)
	if err == nil {
		t.Fatal("expected insufficient data error")
	}
	if !strings.Contains(err.Error(), "insufficient data for AAPL") {
		t.Errorf("error = %q", err)
	}
}

func TestSuggestUnknownMethod(t *testing.T) {
	src := &stubSource{price: 100}

	_, err := Suggest(context.Background(), src, "AAPL", "astrology", 0)
	if err == nil {
		t.Fatal("expected unknown method error")
	}
	for _, m := range []string{"percentage", "volatility", "moving_average"} {
		if !strings.Contains(err.Error(), m) {
			t.Errorf("error should name valid method %q: %q", m, err)
		}
	}
}

func TestSuggestSourceFailure(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("connection refused")}

	_, err := Suggest(context.Background(), src, "AAPL", MethodPercentage, 5)
	if err == nil {
		t.Fatal("expected error when the source fails")
	}
	if !strings.Contains(err.Error(), "AAPL") {
		t.Errorf("error should identify the symbol: %q", err)
	}
}
