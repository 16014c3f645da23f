package config

import (
	"github.com/caarlos0/env/v11"
)

// Config carries the runtime knobs read from the environment. Model bounds are
// not configured here: they travel in explicit scenario parameter records.
type Config struct {
	TimeBudget int    `env:"TIME_BUDGET" envDefault:"10"` // seconds granted to each solver run
	Scenario   string `env:"SCENARIO" envDefault:"drivers"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ROSTERING_"}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
