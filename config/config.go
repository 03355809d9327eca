package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
)

// Config is the playground process configuration. Environment variables set
// the defaults and command line flags override them.
type Config struct {
	Debug     bool   `env:"PLAYERFSM_DEBUG" envDefault:"false"`
	PrefabDir string `env:"PLAYERFSM_PREFAB_DIR" envDefault:"prefabs"`
	HotReload bool   `env:"PLAYERFSM_HOT_RELOAD" envDefault:"true"`
	Weapon    string `env:"PLAYERFSM_WEAPON"`
	Width     int    `env:"PLAYERFSM_WIDTH" envDefault:"640"`
	Height    int    `env:"PLAYERFSM_HEIGHT" envDefault:"360"`
	TPS       int    `env:"PLAYERFSM_TPS" envDefault:"60"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and then args.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("playground", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging and HUD")
	fs.StringVar(&cfg.PrefabDir, "prefabs", cfg.PrefabDir, "directory checked for actor.yaml and scripts before the embedded copies")
	fs.BoolVar(&cfg.HotReload, "reload", cfg.HotReload, "watch the prefab directory and re-apply tuning on change")
	fs.StringVar(&cfg.Weapon, "weapon", cfg.Weapon, "weapon equipped at start")
	fs.IntVar(&cfg.Width, "w", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "h", cfg.Height, "window height")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", c.TPS)
	}
	return nil
}

// Delta is the fixed frame duration in seconds.
func (c Config) Delta() float64 {
	return 1 / float64(c.TPS)
}
