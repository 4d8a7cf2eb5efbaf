package alert

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

func TestInRange(t *testing.T) {
	tests := []struct {
		price, low, high float64
		want             bool
	}{
		{100, 90, 110, true},
		{89.99, 90, 110, false},
		{110.01, 90, 110, false},
		{90, 90, 110, true},  // boundary is in-range
		{110, 90, 110, true}, // boundary is in-range
	}

	for _, tt := range tests {
		if got := InRange(tt.price, tt.low, tt.high); got != tt.want {
			t.Errorf("InRange(%g, %g, %g) = %v, want %v", tt.price, tt.low, tt.high, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	msg, out := Render("AAPL", 230, 240, 245)
	if !out {
		t.Fatal("expected an alert below the range")
	}
	if !strings.Contains(msg, "BELOW") || !strings.Contains(msg, "(240, 245)") {
		t.Errorf("below alert = %q", msg)
	}

	msg, out = Render("AAPL", 250, 240, 245)
	if !out {
		t.Fatal("expected an alert above the range")
	}
	if !strings.Contains(msg, "ABOVE") || !strings.Contains(msg, "(240, 245)") {
		t.Errorf("above alert = %q", msg)
	}

	if _, out := Render("AAPL", 242, 240, 245); out {
		t.Error("no alert expected inside the range")
	}
}

// pickySource fails for selected symbols and serves fixed prices otherwise
type pickySource struct {
	prices map[string]float64
}

func (s *pickySource) Price(ctx context.Context, symbol string) (float64, error) {
	p, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote data for %s", symbol)
	}
	return p, nil
}

func (s *pickySource) History(ctx context.Context, symbol string, days int) ([]market.Bar, error) {
	return nil, fmt.Errorf("not implemented")
}

func TestMonitorAllEmpty(t *testing.T) {
	store := watchlist.NewStore()
	src := &pickySource{}

	got := MonitorAll(context.Background(), store, src)
	if got != "No stocks in watchlist to monitor" {
		t.Errorf("empty store report = %q", got)
	}
}

func TestMonitorAllContinuesOnFailure(t *testing.T) {
	store := watchlist.NewStore()
	store.Add("AAPL", 240, 245)
	store.Add("FAIL", 10, 20)
	store.Add("MSFT", 300, 400)

	src := &pickySource{prices: map[string]float64{
		"AAPL": 242, // in range
		"MSFT": 500, // above
	}}

	report := MonitorAll(context.Background(), store, src)

	for _, want := range []string{
		"- AAPL: $242.00 ✅ In range",
		"- FAIL: Could not fetch price",
		"- MSFT: $500.00 ⚠️ OUT OF RANGE",
		"ALERTS:",
		"ABOVE",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestMonitorAllWithinRange(t *testing.T) {
	store := watchlist.NewStore()
	store.Add("AAPL", 240, 245)

	src := &pickySource{prices: map[string]float64{"AAPL": 243}}

	report := MonitorAll(context.Background(), store, src)
	if !strings.Contains(report, "All stocks within range") {
		t.Errorf("report missing all-clear line:\n%s", report)
	}
	if strings.Contains(report, "ALERTS:") {
		t.Errorf("unexpected alerts block:\n%s", report)
	}
}
