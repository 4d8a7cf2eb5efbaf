package monitor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

type fixedSource struct {
	prices map[string]float64
}

func (s *fixedSource) Price(ctx context.Context, symbol string) (float64, error) {
	p, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote data for %s", symbol)
	}
	return p, nil
}

func (s *fixedSource) History(ctx context.Context, symbol string, days int) ([]market.Bar, error) {
	return nil, fmt.Errorf("not implemented")
}

func TestSetInterval(t *testing.T) {
	m := New(watchlist.NewStore(), &fixedSource{})

	if m.Interval() != DefaultInterval {
		t.Errorf("default interval = %s, want %s", m.Interval(), DefaultInterval)
	}

	m.SetInterval(15 * time.Minute)
	if m.Interval() != 15*time.Minute {
		t.Errorf("interval = %s, want 15m", m.Interval())
	}

	// Non-positive intervals are ignored
	m.SetInterval(0)
	if m.Interval() != 15*time.Minute {
		t.Errorf("zero interval must be ignored, got %s", m.Interval())
	}
}

func TestRunSweepsImmediately(t *testing.T) {
	store := watchlist.NewStore()
	store.Add("AAPL", 240, 245)

	m := New(store, &fixedSource{prices: map[string]float64{"AAPL": 300}})

	reports := make(chan string, 1)
	m.Report = func(report string) {
		select {
		case reports <- report:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case report := <-reports:
		if !strings.Contains(report, "AAPL") || !strings.Contains(report, "ALERTS:") {
			t.Errorf("unexpected report:\n%s", report)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no initial sweep within 5s")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
