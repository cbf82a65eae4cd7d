package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete dashboard configuration
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	ETL      ETLConfig      `json:"etl" yaml:"etl"`
}

// DatabaseConfig locates the warehouse database file
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ServerConfig contains query gateway parameters
type ServerConfig struct {
	Port string `json:"port" yaml:"port"`
}

// ETLConfig contains load pipeline parameters
type ETLConfig struct {
	Source     string   `json:"source" yaml:"source"` // "csv" or "synthetic"
	CSVDir     string   `json:"csv_dir,omitempty" yaml:"csv_dir,omitempty"`
	Tickers    []string `json:"tickers" yaml:"tickers"`
	Days       int      `json:"days" yaml:"days"`
	LotSize    int64    `json:"lot_size" yaml:"lot_size"`
	Seed       int64    `json:"seed" yaml:"seed"`
	PriceField string   `json:"price_field" yaml:"price_field"` // open/high/low/close

	Symbols    map[string]SymbolConfig `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Traders    []TraderConfig          `json:"traders" yaml:"traders"`
	Strategies []StrategyConfig        `json:"strategies" yaml:"strategies"`
}

// SymbolConfig carries display attributes for a ticker
type SymbolConfig struct {
	Name   string `json:"name" yaml:"name"`
	Sector string `json:"sector" yaml:"sector"`
}

// TraderConfig is one roster entry for the trader dimension
type TraderConfig struct {
	Name string `json:"name" yaml:"name"`
	Team string `json:"team" yaml:"team"`
}

// StrategyConfig is one roster entry for the strategy dimension
type StrategyConfig struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	RiskProfile string `json:"risk_profile" yaml:"risk_profile"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// content), then applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file settings from the environment. A .env file in
// the working directory is honored when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("TRADEDASH_DB_PATH"); ok {
		c.Database.Path = v
	}
	if v, ok := os.LookupEnv("TRADEDASH_PORT"); ok {
		c.Server.Port = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.ETL.Source != "csv" && c.ETL.Source != "synthetic" {
		return fmt.Errorf("etl.source must be 'csv' or 'synthetic'")
	}
	if c.ETL.Source == "csv" && c.ETL.CSVDir == "" {
		return fmt.Errorf("etl.csv_dir required for CSV source")
	}
	if len(c.ETL.Tickers) == 0 {
		return fmt.Errorf("etl.tickers must not be empty")
	}
	if c.ETL.Days <= 0 {
		return fmt.Errorf("etl.days must be positive")
	}
	if c.ETL.LotSize <= 0 {
		return fmt.Errorf("etl.lot_size must be positive")
	}
	switch c.ETL.PriceField {
	case "open", "high", "low", "close":
	default:
		return fmt.Errorf("etl.price_field must be one of open, high, low, close")
	}
	if len(c.ETL.Traders) == 0 {
		return fmt.Errorf("etl.traders must not be empty")
	}
	if len(c.ETL.Strategies) == 0 {
		return fmt.Errorf("etl.strategies must not be empty")
	}
	for _, t := range c.ETL.Traders {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("etl.traders entries require a name")
		}
	}
	for _, s := range c.ETL.Strategies {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("etl.strategies entries require a name")
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./tradedash.db",
		},
		Server: ServerConfig{
			Port: "8080",
		},
		ETL: ETLConfig{
			Source:     "synthetic",
			Tickers:    []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "BTC-USD", "ETH-USD"},
			Days:       90,
			LotSize:    10,
			Seed:       42,
			PriceField: "close",
			Symbols: map[string]SymbolConfig{
				"AAPL":    {Name: "Apple Inc.", Sector: "Technology"},
				"MSFT":    {Name: "Microsoft Corporation", Sector: "Technology"},
				"GOOGL":   {Name: "Alphabet Inc.", Sector: "Technology"},
				"AMZN":    {Name: "Amazon.com Inc.", Sector: "Consumer Cyclical"},
				"TSLA":    {Name: "Tesla Inc.", Sector: "Automotive"},
				"BTC-USD": {Name: "Bitcoin USD", Sector: "Cryptocurrency"},
				"ETH-USD": {Name: "Ethereum USD", Sector: "Cryptocurrency"},
			},
			Traders: []TraderConfig{
				{Name: "John Smith", Team: "Alpha Team"},
				{Name: "Jane Doe", Team: "Beta Team"},
				{Name: "David Johnson", Team: "Alpha Team"},
				{Name: "Sarah Williams", Team: "Gamma Team"},
			},
			Strategies: []StrategyConfig{
				{Name: "Momentum Trading", Description: "Technical", RiskProfile: "High"},
				{Name: "Value Investing", Description: "Fundamental", RiskProfile: "Medium"},
				{Name: "Trend Following", Description: "Technical", RiskProfile: "Medium"},
				{Name: "Mean Reversion", Description: "Quantitative", RiskProfile: "Medium"},
				{Name: "Market Neutral", Description: "Quantitative", RiskProfile: "Low"},
			},
		},
	}
}
