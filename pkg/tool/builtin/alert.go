package builtin

import (
	"context"
	"fmt"

	"github.com/xinguang/stock-sentinel/pkg/alert"
	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// CheckPriceLimit reports whether a price breaches a threshold range
type CheckPriceLimit struct{}

func (t *CheckPriceLimit) Name() string { return "check_price_limit" }

func (t *CheckPriceLimit) Usage() string {
	return "check_price_limit(price|low|high) - Check if price is outside threshold range (returns true/false)"
}

func (t *CheckPriceLimit) NumArgs() int { return 3 }

func (t *CheckPriceLimit) Call(ctx context.Context, args tool.Args) (string, error) {
	price, err := args.Float(0)
	if err != nil {
		return "", err
	}
	low, err := args.Float(1)
	if err != nil {
		return "", err
	}
	high, err := args.Float(2)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%t", !alert.InRange(price, low, high)), nil
}

// GenerateAlert renders an alert message for an out-of-range price
type GenerateAlert struct{}

func (t *GenerateAlert) Name() string { return "generate_alert" }

func (t *GenerateAlert) Usage() string {
	return "generate_alert(alert_status|symbol|price|low|high) - Generate alert message when alert_status is true"
}

func (t *GenerateAlert) NumArgs() int { return 5 }

func (t *GenerateAlert) Call(ctx context.Context, args tool.Args) (string, error) {
	price, err := args.Float(2)
	if err != nil {
		return "", err
	}
	low, err := args.Float(3)
	if err != nil {
		return "", err
	}
	high, err := args.Float(4)
	if err != nil {
		return "", err
	}

	symbol := watchlist.Normalize(args.String(1))

	if !args.Bool(0) {
		return fmt.Sprintf("No alert: %s price $%.2f is within threshold range (%g, %g)",
			symbol, price, low, high), nil
	}

	msg, out := alert.Render(symbol, price, low, high)
	if !out {
		return fmt.Sprintf("No alert: %s price $%.2f is within threshold range (%g, %g)",
			symbol, price, low, high), nil
	}
	return msg, nil
}

// MonitorAllStocks sweeps the whole watchlist once
type MonitorAllStocks struct {
	Store  *watchlist.Store
	Source market.Source
}

func (t *MonitorAllStocks) Name() string { return "monitor_all_stocks" }

func (t *MonitorAllStocks) Usage() string {
	return "monitor_all_stocks() - Check all stocks in watchlist for alerts"
}

func (t *MonitorAllStocks) NumArgs() int { return 0 }

func (t *MonitorAllStocks) Call(ctx context.Context, args tool.Args) (string, error) {
	return alert.MonitorAll(ctx, t.Store, t.Source), nil
}
