package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/xinguang/stock-sentinel/pkg/advisor"
	"github.com/xinguang/stock-sentinel/pkg/logger"
	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

var marketLog = logger.New("tools:market")

// GetStockPrice looks up the current price for a symbol
type GetStockPrice struct {
	Source market.Source
}

func (t *GetStockPrice) Name() string { return "get_stock_price" }

func (t *GetStockPrice) Usage() string {
	return "get_stock_price(symbol) - Get current stock price for a symbol"
}

func (t *GetStockPrice) NumArgs() int { return 1 }

func (t *GetStockPrice) Call(ctx context.Context, args tool.Args) (string, error) {
	symbol := watchlist.Normalize(args.String(0))

	price, err := t.Source.Price(ctx, symbol)
	if err != nil {
		// Lookup failures are contained here: the model sees the sentinel,
		// the diagnostic goes to the log
		marketLog.Warn("price lookup failed for %s: %v", symbol, err)
		return fmt.Sprintf("Price for %s is unavailable", symbol), nil
	}

	return fmt.Sprintf("Current price of %s: $%.2f", symbol, price), nil
}

// SuggestThresholds computes low/high thresholds for a symbol
type SuggestThresholds struct {
	Source market.Source
}

func (t *SuggestThresholds) Name() string { return "suggest_thresholds" }

func (t *SuggestThresholds) Usage() string {
	return "suggest_thresholds(symbol|method|percentage) - Suggest low/high thresholds; method is percentage, volatility, or moving_average"
}

func (t *SuggestThresholds) NumArgs() int { return 3 }

func (t *SuggestThresholds) Call(ctx context.Context, args tool.Args) (string, error) {
	pct, err := args.Float(2)
	if err != nil {
		return "", err
	}

	method := advisor.Method(strings.ToLower(args.String(1)))
	s, err := advisor.Suggest(ctx, t.Source, args.String(0), method, pct)
	if err != nil {
		return err.Error(), nil
	}

	return s.String(), nil
}
