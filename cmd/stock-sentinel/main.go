// stock-sentinel - An LLM-driven stock watchlist agent
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xinguang/stock-sentinel/pkg/config"
	"github.com/xinguang/stock-sentinel/pkg/engine"
	"github.com/xinguang/stock-sentinel/pkg/logger"
	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/monitor"
	"github.com/xinguang/stock-sentinel/pkg/provider"
	"github.com/xinguang/stock-sentinel/pkg/provider/gemini"
	"github.com/xinguang/stock-sentinel/pkg/provider/openai"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/tool/builtin"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

var (
	version = "0.1.0"

	flagModel         string
	flagMaxIterations int
	flagMarket        string
	flagMonitor       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stock-sentinel [query]",
		Short: "LLM-driven stock watchlist agent",
		Long: `stock-sentinel runs a tool-using agent loop: a language model manages a
watchlist of ticker symbols with price thresholds, fetches prices, and
computes alerts until it reaches a final answer.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAgent,
	}

	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Model: gemini-2.0-flash (default), gpt-4o, ...")
	rootCmd.PersistentFlags().IntVarP(&flagMaxIterations, "max-iterations", "n", 0, "Iteration budget for the agent loop")
	rootCmd.PersistentFlags().StringVar(&flagMarket, "market", "", "Market data source: yahoo or mock")
	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", false, "Keep monitoring the watchlist in the background after the run")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(monitorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stock-sentinel version %s\n", version)
		},
	}
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	src := buildMarketSource(cfg)
	store := watchlist.NewStore()

	mon := monitor.New(store, src)
	mon.SetInterval(time.Duration(cfg.MonitorIntervalMins) * time.Minute)

	reg := tool.NewRegistry()
	if err := builtin.RegisterAll(reg, store, src, mon); err != nil {
		return err
	}

	eng := engine.New(&engine.Options{
		Provider:      p,
		Model:         cfg.Model,
		Registry:      reg,
		Store:         store,
		MaxIterations: cfg.MaxIterations,
	})
	eng.SetCallbacks(&engine.Callbacks{
		OnResponse: func(iteration int, text string) {
			fmt.Printf("\n--- Iteration %d ---\n", iteration)
			fmt.Printf("🧠 LLM Response: %s\n", text)
		},
		OnCall: func(call *engine.Call) {
			fmt.Printf("🔧 Calling: %s\n", call)
		},
		OnResult: func(result string) {
			fmt.Printf("✅ Result: %s\n", result)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Println("🎯 Stock Monitoring Agent")
	fmt.Println(strings.Repeat("=", 60))

	result, err := eng.Run(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	switch result.Status {
	case engine.StatusFinal:
		fmt.Printf("📋 Final Answer: %s\n", result.FinalAnswer)
	case engine.StatusMaxIterations:
		fmt.Printf("⏰ Max iterations reached after %d turns\n", result.Iterations)
	}
	fmt.Println(store.Render())

	if flagMonitor {
		fmt.Println("🚀 Background monitoring running. Press Ctrl+C to stop.")
		mon.Run(ctx)
	}

	return nil
}

func monitorCmd() *cobra.Command {
	var watches []string
	var intervalMins int

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run periodic watchlist monitoring in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if intervalMins > 0 {
				cfg.MonitorIntervalMins = intervalMins
			}

			src := buildMarketSource(cfg)
			store := watchlist.NewStore()

			for _, w := range watches {
				symbol, low, high, err := parseWatch(w)
				if err != nil {
					return err
				}
				fmt.Println(store.Add(symbol, low, high))
			}

			mon := monitor.New(store, src)
			mon.SetInterval(time.Duration(cfg.MonitorIntervalMins) * time.Minute)
			mon.Report = func(report string) {
				fmt.Println(report)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			mon.Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&watches, "watch", "w", nil, "Watch entry as SYMBOL:LOW:HIGH (repeatable)")
	cmd.Flags().IntVarP(&intervalMins, "interval", "i", 0, "Sweep interval in minutes")

	return cmd
}

// parseWatch splits a SYMBOL:LOW:HIGH flag value
func parseWatch(s string) (string, float64, float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("invalid watch entry %q: expected SYMBOL:LOW:HIGH", s)
	}
	low, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid low threshold in %q: %w", s, err)
	}
	high, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid high threshold in %q: %w", s, err)
	}
	return parts[0], low, high, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagMaxIterations > 0 {
		cfg.MaxIterations = flagMaxIterations
	}
	if flagMarket != "" {
		cfg.MarketSource = flagMarket
	}

	logger.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func buildProvider(cfg *config.Config) (provider.Provider, error) {
	switch provider.DetectFromModel(cfg.Model) {
	case provider.TypeOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return openai.New(cfg.OpenAIAPIKey, ""), nil
	default:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		return gemini.New(cfg.GeminiAPIKey), nil
	}
}

func buildMarketSource(cfg *config.Config) market.Source {
	if strings.EqualFold(cfg.MarketSource, "mock") {
		return market.NewMockSource()
	}
	return market.NewYahooSource()
}
