package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/xinguang/stock-sentinel/pkg/advisor"
	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// AddToWatchlist adds a symbol with explicit thresholds
type AddToWatchlist struct {
	Store *watchlist.Store
}

func (t *AddToWatchlist) Name() string { return "add_to_watchlist" }

func (t *AddToWatchlist) Usage() string {
	return "add_to_watchlist(symbol|low_threshold|high_threshold) - Add stock to monitoring watchlist"
}

func (t *AddToWatchlist) NumArgs() int { return 3 }

func (t *AddToWatchlist) Call(ctx context.Context, args tool.Args) (string, error) {
	low, err := args.Float(1)
	if err != nil {
		return "", err
	}
	high, err := args.Float(2)
	if err != nil {
		return "", err
	}
	return t.Store.Add(args.String(0), low, high), nil
}

// AddWithSuggestions computes thresholds via the advisor, then adds the
// symbol with them
type AddWithSuggestions struct {
	Store  *watchlist.Store
	Source market.Source
}

func (t *AddWithSuggestions) Name() string { return "add_to_watchlist_with_suggestions" }

func (t *AddWithSuggestions) Usage() string {
	return "add_to_watchlist_with_suggestions(symbol|method|percentage) - Suggest thresholds (percentage, volatility, or moving_average) and add the stock in one step"
}

func (t *AddWithSuggestions) NumArgs() int { return 3 }

func (t *AddWithSuggestions) Call(ctx context.Context, args tool.Args) (string, error) {
	pct, err := args.Float(2)
	if err != nil {
		return "", err
	}

	method := advisor.Method(strings.ToLower(args.String(1)))
	s, err := advisor.Suggest(ctx, t.Source, args.String(0), method, pct)
	if err != nil {
		// Advisor failures go back to the model verbatim, never as thresholds
		return err.Error(), nil
	}

	added := t.Store.Add(s.Symbol, s.Low, s.High)
	return fmt.Sprintf("%s (%s method: %s)", added, s.Method, s.Reasoning), nil
}

// RemoveFromWatchlist removes a symbol
type RemoveFromWatchlist struct {
	Store *watchlist.Store
}

func (t *RemoveFromWatchlist) Name() string { return "remove_from_watchlist" }

func (t *RemoveFromWatchlist) Usage() string {
	return "remove_from_watchlist(symbol) - Remove stock from watchlist"
}

func (t *RemoveFromWatchlist) NumArgs() int { return 1 }

func (t *RemoveFromWatchlist) Call(ctx context.Context, args tool.Args) (string, error) {
	return t.Store.Remove(args.String(0)), nil
}

// GetWatchlist renders the current watchlist
type GetWatchlist struct {
	Store *watchlist.Store
}

func (t *GetWatchlist) Name() string { return "get_watchlist" }

func (t *GetWatchlist) Usage() string {
	return "get_watchlist() - Get current watchlist with all stocks and thresholds"
}

func (t *GetWatchlist) NumArgs() int { return 0 }

func (t *GetWatchlist) Call(ctx context.Context, args tool.Args) (string, error) {
	return t.Store.Render(), nil
}
