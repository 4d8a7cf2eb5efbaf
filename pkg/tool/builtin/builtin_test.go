package builtin

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/monitor"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// stubSource serves one fixed price and a flat history
type stubSource struct {
	price      float64
	historyLen int
	err        error
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
	bars := make([]market.Bar, s.historyLen)
	for i := range bars {
		bars[i] = market.Bar{
			Date:  time.Now().AddDate(0, 0, i-s.historyLen),
			Close: decimal.NewFromFloat(s.price),
		}
	}
	return bars, nil
}

func TestRegisterAllExposesFullSurface(t *testing.T) {
	reg := tool.NewRegistry()
	store := watchlist.NewStore()

	if err := RegisterAll(reg, store, &stubSource{price: 100}, nil); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}

	want := []string{
		"add_to_watchlist", "add_to_watchlist_with_suggestions",
		"check_price_limit", "generate_alert", "get_stock_price",
		"get_watchlist", "monitor_all_stocks", "remove_from_watchlist",
		"schedule_monitoring", "suggest_thresholds",
	}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("registered %d tools, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tool %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCheckPriceLimit(t *testing.T) {
	cp := &CheckPriceLimit{}

	tests := []struct {
		args tool.Args
		want string
	}{
		{tool.Args{250.0, 240.0, 245.0}, "true"},
		{tool.Args{242.0, 240.0, 245.0}, "false"},
		{tool.Args{240.0, 240.0, 245.0}, "false"}, // boundary
	}

	for _, tt := range tests {
		got, err := cp.Call(context.Background(), tt.args)
		if err != nil {
			t.Fatalf("Call(%v): %v", tt.args, err)
		}
		if got != tt.want {
			t.Errorf("Call(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestGenerateAlert(t *testing.T) {
	ga := &GenerateAlert{}

	got, err := ga.Call(context.Background(), tool.Args{"true", "aapl", 250.0, 240.0, 245.0})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "ABOVE") || !strings.Contains(got, "AAPL") {
		t.Errorf("alert = %q", got)
	}

	// Falsy status produces no alert even for an out-of-range price
	got, err = ga.Call(context.Background(), tool.Args{0, "AAPL", 250.0, 240.0, 245.0})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "No alert") {
		t.Errorf("falsy status result = %q", got)
	}
}

func TestGetStockPriceUnavailable(t *testing.T) {
	gp := &GetStockPrice{Source: &stubSource{err: fmt.Errorf("connection refused")}}

	got, err := gp.Call(context.Background(), tool.Args{"msft"})
	if err != nil {
		t.Fatalf("lookup failure must be contained, got error: %v", err)
	}
	if got != "Price for MSFT is unavailable" {
		t.Errorf("result = %q", got)
	}
}

func TestAddWithSuggestionsErrorPassthrough(t *testing.T) {
	store := watchlist.NewStore()
	aws := &AddWithSuggestions{
		Store:  store,
		Source: &stubSource{price: 100, historyLen: 3}, // too short for volatility
	}

	got, err := aws.Call(context.Background(), tool.Args{"AAPL", "volatility", 0})
	if err != nil {
		t.Fatalf("advisor failure must be a result, not an error: %v", err)
	}
	if !strings.Contains(got, "insufficient data for AAPL") {
		t.Errorf("advisor error not surfaced verbatim: %q", got)
	}
	if store.Len() != 0 {
		t.Error("nothing may be added when the advisor fails")
	}
}

func TestAddWithSuggestionsPercentage(t *testing.T) {
	store := watchlist.NewStore()
	aws := &AddWithSuggestions{Store: store, Source: &stubSource{price: 100}}

	got, err := aws.Call(context.Background(), tool.Args{"aapl", "percentage", 5})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Added AAPL to watchlist: Low=95, High=105") {
		t.Errorf("result = %q", got)
	}

	snap := store.Snapshot()
	if len(snap) != 1 || snap[0].Low != 95 || snap[0].High != 105 {
		t.Errorf("stored entry = %+v", snap)
	}
}

func TestScheduleMonitoring(t *testing.T) {
	store := watchlist.NewStore()
	mon := monitor.New(store, &stubSource{price: 100})
	sm := &ScheduleMonitoring{Monitor: mon}

	got, err := sm.Call(context.Background(), tool.Args{15})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Monitoring scheduled for every 15 minutes" {
		t.Errorf("result = %q", got)
	}
	if mon.Interval() != 15*time.Minute {
		t.Errorf("interval = %s, want 15m", mon.Interval())
	}
}

func TestScheduleMonitoringWithoutMonitor(t *testing.T) {
	sm := &ScheduleMonitoring{}

	got, err := sm.Call(context.Background(), tool.Args{30})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Monitoring scheduled for every 30 minutes" {
		t.Errorf("result = %q", got)
	}
}
