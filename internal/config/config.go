// Package config loads palletopt's run configuration: pallet geometry, GA
// parameters, and batch-driver knobs, from (in increasing priority) file
// defaults, a config file, and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/piwi3910/palletopt/internal/model"
)

// Config holds every tunable surfaced to the CLI and batch driver.
type Config struct {
	Pallet  PalletConfig  `mapstructure:"pallet"`
	GA      GAConfig      `mapstructure:"ga"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// PalletConfig mirrors model.PalletDimensions plus the packing budget.
type PalletConfig struct {
	Length        float64 `mapstructure:"length"`
	Width         float64 `mapstructure:"width"`
	Height        float64 `mapstructure:"height"`
	MaxPallets    int     `mapstructure:"max_pallets"`
	AllowRotation bool    `mapstructure:"allow_rotation"`
}

// GAConfig mirrors model.GASettings.
type GAConfig struct {
	PopulationSize  int     `mapstructure:"population_size"`
	Mu              int     `mapstructure:"mu"`
	Lambda          int     `mapstructure:"lambda"`
	CrossoverProb   float64 `mapstructure:"crossover_prob"`
	MutationProb    float64 `mapstructure:"mutation_prob"`
	MaxGenerations  int     `mapstructure:"max_generations"`
	StagnationLimit int     `mapstructure:"stagnation_limit"`
}

// BatchConfig controls the parallel order driver.
type BatchConfig struct {
	BaseSeed    int64 `mapstructure:"base_seed"`
	Parallelism int   `mapstructure:"parallelism"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MetricsConfig controls the optional Prometheus HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load reads palletopt's configuration from ~/.palletopt/config.yaml (or
// ./config.yaml, ./config/config.yaml), an optional .env file, and
// PALLETOPT_-prefixed environment variables, in that ascending priority.
func Load() (*Config, error) {
	_ = godotenv.Load() // best-effort; a missing .env is not an error

	v := viper.New()
	v.SetDefault("pallet.length", model.DefaultPalletLength)
	v.SetDefault("pallet.width", model.DefaultPalletWidth)
	v.SetDefault("pallet.height", model.DefaultPalletHeight)
	v.SetDefault("pallet.max_pallets", 5)
	v.SetDefault("pallet.allow_rotation", true)

	defaults := model.DefaultGASettings()
	v.SetDefault("ga.population_size", defaults.PopulationSize)
	v.SetDefault("ga.mu", defaults.Mu)
	v.SetDefault("ga.lambda", defaults.Lambda)
	v.SetDefault("ga.crossover_prob", defaults.CrossoverProb)
	v.SetDefault("ga.mutation_prob", defaults.MutationProb)
	v.SetDefault("ga.max_generations", defaults.MaxGenerations)
	v.SetDefault("ga.stagnation_limit", defaults.StagnationLimit)

	v.SetDefault("batch.base_seed", int64(42))
	v.SetDefault("batch.parallelism", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.palletopt")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvPrefix("PALLETOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// PalletDimensions converts the loaded pallet geometry into model terms.
func (c Config) PalletDimensions() model.PalletDimensions {
	return model.PalletDimensions{Length: c.Pallet.Length, Width: c.Pallet.Width, Height: c.Pallet.Height}
}

// GASettings converts the loaded GA block into model terms.
func (c Config) GASettings() model.GASettings {
	return model.GASettings{
		PopulationSize:  c.GA.PopulationSize,
		Mu:              c.GA.Mu,
		Lambda:          c.GA.Lambda,
		CrossoverProb:   c.GA.CrossoverProb,
		MutationProb:    c.GA.MutationProb,
		MaxGenerations:  c.GA.MaxGenerations,
		StagnationLimit: c.GA.StagnationLimit,
	}
}
