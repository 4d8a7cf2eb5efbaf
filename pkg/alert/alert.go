// Package alert evaluates watchlist thresholds and renders alert reports.
package alert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// InRange reports whether price sits inside [low, high]. The boundaries
// themselves count as in-range; only strict breaches alert.
func InRange(price, low, high float64) bool {
	return price >= low && price <= high
}

// Render produces the alert message for an out-of-range price, or ok=false
// when the price is within the thresholds.
func Render(symbol string, price, low, high float64) (string, bool) {
	switch {
	case price < low:
		return fmt.Sprintf("🚨 ALERT: %s price $%.2f is BELOW threshold range (%g, %g)",
			symbol, price, low, high), true
	case price > high:
		return fmt.Sprintf("🚨 ALERT: %s price $%.2f is ABOVE threshold range (%g, %g)",
			symbol, price, low, high), true
	default:
		return "", false
	}
}

// MonitorAll checks every watchlist entry against its thresholds and returns
// a full report. A failed price lookup records a line for that symbol and
// the scan continues; one bad symbol never aborts the sweep. Price lookups
// happen against a snapshot, outside the store lock.
func MonitorAll(ctx context.Context, store *watchlist.Store, src market.Source) string {
	entries := store.Snapshot()
	if len(entries) == 0 {
		return "No stocks in watchlist to monitor"
	}

	var alerts []string
	var report strings.Builder
	report.WriteString(fmt.Sprintf("Monitoring Report - %s\n", time.Now().Format("2006-01-02 15:04:05")))

	for _, e := range entries {
		price, err := src.Price(ctx, e.Symbol)
		if err != nil {
			report.WriteString(fmt.Sprintf("- %s: Could not fetch price\n", e.Symbol))
			continue
		}

		if msg, out := Render(e.Symbol, price, e.Low, e.High); out {
			alerts = append(alerts, msg)
			report.WriteString(fmt.Sprintf("- %s: $%.2f ⚠️ OUT OF RANGE\n", e.Symbol, price))
		} else {
			report.WriteString(fmt.Sprintf("- %s: $%.2f ✅ In range\n", e.Symbol, price))
		}
	}

	if len(alerts) > 0 {
		return report.String() + "\nALERTS:\n" + strings.Join(alerts, "\n")
	}
	return report.String() + "\nAll stocks within range"
}
