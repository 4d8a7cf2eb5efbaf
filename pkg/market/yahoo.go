package market

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"

	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// YahooSource fetches prices from Yahoo Finance
type YahooSource struct{}

// NewYahooSource creates a Yahoo Finance backed source
func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// Price implements Source
func (y *YahooSource) Price(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	symbol = watchlist.Normalize(symbol)
	if symbol == "" {
		return 0, fmt.Errorf("empty symbol")
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("get quote for %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return 0, fmt.Errorf("no quote data for %s", symbol)
	}

	return math.Round(q.RegularMarketPrice*100) / 100, nil
}

// History implements Source
func (y *YahooSource) History(ctx context.Context, symbol string, days int) ([]Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	symbol = watchlist.Normalize(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var bars []Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Date:  time.Unix(int64(b.Timestamp), 0),
			Close: b.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("get history for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no historical data for %s", symbol)
	}

	return bars, nil
}
