package market

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// MockSource is an offline source that fabricates drifting prices.
// Useful for demos and tests where no market connectivity exists.
type MockSource struct {
	mu        sync.Mutex
	basePrice map[string]float64
}

// NewMockSource creates a new mock source
func NewMockSource() *MockSource {
	return &MockSource{
		basePrice: make(map[string]float64),
	}
}

// Price implements Source
func (m *MockSource) Price(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	symbol = watchlist.Normalize(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()

	base, exists := m.basePrice[symbol]
	if !exists {
		base = 100.0 + rand.Float64()*900.0 // random price between 100-1000
	}

	// Simulate price fluctuation
	change := (rand.Float64() - 0.5) * base * 0.02 // ±2% change
	price := base + change
	m.basePrice[symbol] = price

	return math.Round(price*100) / 100, nil
}

// History implements Source
func (m *MockSource) History(ctx context.Context, symbol string, days int) ([]Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	symbol = watchlist.Normalize(symbol)

	m.mu.Lock()
	base, exists := m.basePrice[symbol]
	if !exists {
		base = 100.0 + rand.Float64()*900.0
		m.basePrice[symbol] = base
	}
	m.mu.Unlock()

	bars := make([]Bar, 0, days)
	price := base
	for i := days - 1; i >= 0; i-- {
		price = price * (1 + (rand.Float64()-0.5)*0.02)
		bars = append(bars, Bar{
			Date:  time.Now().AddDate(0, 0, -i),
			Close: decimal.NewFromFloat(math.Round(price*100) / 100),
		})
	}

	return bars, nil
}
