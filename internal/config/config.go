// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"forestguardian/internal/domain/forest"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"FOREST_ADDR" envDefault:":8080"`

	// PostgresDSN enables the gorm repositories; empty falls back to the
	// in-memory store.
	PostgresDSN   string `env:"FOREST_DB_DSN"`
	MigrationsDir string `env:"FOREST_MIGRATIONS_DIR" envDefault:"./migrations"`

	// MongoURI enables the mission archive; empty disables it.
	MongoURI string `env:"FOREST_MONGO_URI"`
	MongoDB  string `env:"FOREST_MONGO_DB" envDefault:"forestguardian"`

	// PolicyKind selects the Navegador backing: "greedy" or "random".
	PolicyKind string `env:"FOREST_POLICY" envDefault:"greedy"`

	GridSize       int     `env:"FOREST_GRID_SIZE" envDefault:"10"`
	TreeDensity    float64 `env:"FOREST_TREE_DENSITY" envDefault:"0.6"`
	InitialFires   int     `env:"FOREST_INITIAL_FIRES" envDefault:"3"`
	NumAgents      int     `env:"FOREST_NUM_AGENTS" envDefault:"2"`
	MaxSteps       int     `env:"FOREST_MAX_STEPS" envDefault:"200"`
	FireSpreadProb float64 `env:"FOREST_SPREAD_PROB" envDefault:"0.1"`
	WindSpeed      float64 `env:"FOREST_WIND_SPEED" envDefault:"0"`
	WindDirection  float64 `env:"FOREST_WIND_DIRECTION" envDefault:"0"`
	IncludeTerrain bool    `env:"FOREST_INCLUDE_TERRAIN" envDefault:"false"`
	Seed           int64   `env:"FOREST_SEED" envDefault:"0"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PolicyKind != "greedy" && cfg.PolicyKind != "random" {
		return Config{}, fmt.Errorf("unknown policy kind %q", cfg.PolicyKind)
	}
	return cfg, nil
}

// EpisodeConfig maps the environment settings onto an episode config,
// keeping the library defaults for anything not exposed via env.
func (c Config) EpisodeConfig() forest.Config {
	cfg := forest.DefaultConfig()
	cfg.Size = c.GridSize
	cfg.TreeDensity = c.TreeDensity
	cfg.InitialFires = c.InitialFires
	cfg.NumAgents = c.NumAgents
	cfg.MaxSteps = c.MaxSteps
	cfg.FireSpreadProb = c.FireSpreadProb
	cfg.Wind = forest.WindState{Speed: c.WindSpeed, Direction: c.WindDirection}
	cfg.IncludeTerrain = c.IncludeTerrain
	cfg.Seed = c.Seed
	return cfg
}
