// Package builtin provides the watchlist agent's standard tool set.
package builtin

import (
	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/monitor"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// RegisterAll registers every builtin tool on the registry. mon may be nil
// when no background monitor is running; schedule_monitoring then only
// acknowledges the request.
func RegisterAll(reg *tool.Registry, store *watchlist.Store, src market.Source, mon *monitor.Monitor) error {
	tools := []tool.Tool{
		&GetStockPrice{Source: src},
		&SuggestThresholds{Source: src},
		&AddToWatchlist{Store: store},
		&AddWithSuggestions{Store: store, Source: src},
		&RemoveFromWatchlist{Store: store},
		&GetWatchlist{Store: store},
		&CheckPriceLimit{},
		&GenerateAlert{},
		&MonitorAllStocks{Store: store, Source: src},
		&ScheduleMonitoring{Monitor: mon},
	}

	for _, t := range tools {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}
