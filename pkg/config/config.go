// Package config provides configuration loading for stock-sentinel
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the optional YAML config file looked up in the working directory
const FileName = "sentinel.yaml"

// Config is the resolved application configuration.
// Precedence: defaults < sentinel.yaml < environment.
type Config struct {
	Model               string `yaml:"model"`
	MaxIterations       int    `yaml:"max_iterations"`
	MonitorIntervalMins int    `yaml:"monitor_interval_mins"`
	MarketSource        string `yaml:"market_source"` // yahoo or mock
	LogLevel            string `yaml:"log_level"`

	// Secrets come from the environment only, never from the file
	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Model:               "gemini-2.0-flash",
		MaxIterations:       10,
		MonitorIntervalMins: 30,
		MarketSource:        "yahoo",
		LogLevel:            "info",
	}
}

// Load resolves the configuration. A .env file, when present, is folded
// into the process environment first.
func Load() (*Config, error) {
	// Missing .env is fine; system environment still applies
	_ = godotenv.Load()

	cfg := Default()

	if data, err := os.ReadFile(FileName); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", FileName, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	applyEnv(cfg)

	if cfg.MaxIterations <= 0 {
		return nil, fmt.Errorf("max_iterations must be positive, got %d", cfg.MaxIterations)
	}
	if cfg.MonitorIntervalMins <= 0 {
		return nil, fmt.Errorf("monitor_interval_mins must be positive, got %d", cfg.MonitorIntervalMins)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if v := os.Getenv("SENTINEL_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SENTINEL_MARKET"); v != "" {
		cfg.MarketSource = v
	}
	if v := os.Getenv("SENTINEL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if n, ok := envInt("SENTINEL_MAX_ITERATIONS"); ok {
		cfg.MaxIterations = n
	}
	if n, ok := envInt("SENTINEL_MONITOR_INTERVAL_MINS"); ok {
		cfg.MonitorIntervalMins = n
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
