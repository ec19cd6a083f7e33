package game

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible opponent words.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"WORDBATTLE_SEED" envDefault:"0"`

	// StepDelay paces battle playback in the terminal.
	StepDelay time.Duration `env:"WORDBATTLE_STEP_DELAY" envDefault:"400ms"`

	StartingGold int `env:"WORDBATTLE_STARTING_GOLD" envDefault:"10"`
	BaseReward   int `env:"WORDBATTLE_BASE_REWARD" envDefault:"1"`

	// CatalogPath optionally overrides the embedded letter catalog (JSON or YAML).
	CatalogPath string `env:"WORDBATTLE_CATALOG_PATH"`
	// HistoryPath enables the SQLite battle history when set.
	HistoryPath string `env:"WORDBATTLE_HISTORY_PATH"`

	OTelEnabled bool `env:"WORDBATTLE_OTEL_ENABLED" envDefault:"false"`

	// PlayerWord and OpponentWord select a headless battle. They are flags only.
	PlayerWord   string `env:"-"`
	OpponentWord string `env:"-"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for opponent words (0 = time based)")
	fs.DurationVar(&cfg.StepDelay, "step-delay", cfg.StepDelay, "Delay between battle steps")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Letter catalog override file (JSON or YAML)")
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite battle history path")
	fs.StringVar(&cfg.PlayerWord, "player", "", "Player word for a headless battle")
	fs.StringVar(&cfg.OpponentWord, "opponent", "", "Opponent word for a headless battle (random if empty)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.StepDelay < 0 {
		return fmt.Errorf("step delay must be >= 0, got %s", c.StepDelay)
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("starting gold must be >= 0, got %d", c.StartingGold)
	}
	if c.BaseReward < 0 {
		return fmt.Errorf("base reward must be >= 0, got %d", c.BaseReward)
	}
	if c.OpponentWord != "" && c.PlayerWord == "" {
		return fmt.Errorf("-opponent requires -player")
	}
	return nil
}

// Headless reports whether a single battle should run without the terminal UI.
func (c Config) Headless() bool {
	return c.PlayerWord != ""
}

// ResolvedSeed returns the configured seed, or a time-based one for 0.
func (c Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
