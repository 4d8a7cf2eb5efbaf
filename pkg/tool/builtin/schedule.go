package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/xinguang/stock-sentinel/pkg/monitor"
	"github.com/xinguang/stock-sentinel/pkg/tool"
)

// ScheduleMonitoring reconfigures the background monitor's cadence
type ScheduleMonitoring struct {
	Monitor *monitor.Monitor
}

func (t *ScheduleMonitoring) Name() string { return "schedule_monitoring" }

func (t *ScheduleMonitoring) Usage() string {
	return "schedule_monitoring(interval_minutes) - Set up continuous monitoring"
}

func (t *ScheduleMonitoring) NumArgs() int { return 1 }

func (t *ScheduleMonitoring) Call(ctx context.Context, args tool.Args) (string, error) {
	minutes, err := args.Float(0)
	if err != nil {
		return "", err
	}
	if minutes <= 0 {
		return "", fmt.Errorf("interval_minutes must be positive, got %g", minutes)
	}

	if t.Monitor != nil {
		t.Monitor.SetInterval(time.Duration(minutes * float64(time.Minute)))
	}

	return fmt.Sprintf("Monitoring scheduled for every %g minutes", minutes), nil
}
