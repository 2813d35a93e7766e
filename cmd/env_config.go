package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the settings read from MONTYHALL_* environment variables.
// Defaults match the flag defaults so an empty environment changes nothing.
type EnvConfig struct {
	NumDoors             int    `env:"MONTYHALL_NUM_DOORS"                envDefault:"3"`
	NumDoorsOpenedByHost int    `env:"MONTYHALL_NUM_DOORS_OPENED_BY_HOST" envDefault:"1"`
	NumSimulations       int    `env:"MONTYHALL_NUM_SIMULATIONS"          envDefault:"10000"`
	Seed                 *int64 `env:"MONTYHALL_SEED"`
	Workers              int    `env:"MONTYHALL_WORKERS"                  envDefault:"1"`
	Trial                string `env:"MONTYHALL_TRIAL"                    envDefault:"index"`
	LogLevel             string `env:"MONTYHALL_LOG"                      envDefault:"error"`
	DB                   string `env:"MONTYHALL_DB"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
