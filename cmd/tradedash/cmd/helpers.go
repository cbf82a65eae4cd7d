package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradedash/config"
	"github.com/rustyeddy/tradedash/etl"
	"github.com/rustyeddy/tradedash/market"
)

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func newSource(cfg *config.Config) (market.Source, error) {
	switch cfg.ETL.Source {
	case "csv":
		return market.NewCSVSource(cfg.ETL.CSVDir), nil
	case "synthetic":
		return market.NewSyntheticSource(cfg.ETL.Seed), nil
	default:
		return nil, fmt.Errorf("unknown etl source %q", cfg.ETL.Source)
	}
}

func newPolicy(cfg *config.Config) etl.Policy {
	policy := etl.Policy{
		LotSize:    cfg.ETL.LotSize,
		Seed:       cfg.ETL.Seed,
		PriceField: market.PriceField(cfg.ETL.PriceField),
	}
	for _, t := range cfg.ETL.Traders {
		policy.Traders = append(policy.Traders, etl.TraderSpec{Name: t.Name, Team: t.Team})
	}
	for _, s := range cfg.ETL.Strategies {
		policy.Strategies = append(policy.Strategies, etl.StrategySpec{
			Name:        s.Name,
			Description: s.Description,
			RiskProfile: s.RiskProfile,
		})
	}
	return policy
}
