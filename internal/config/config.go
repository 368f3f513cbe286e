package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Front ends selectable with the mode key.
const (
	ModeWeb  = "web"
	ModeTerm = "term"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings read from config.yml and the environment.
// Boolean keys must default to false: cleanenv fills zero fields with
// env-default after the file is read.
type Config struct {
	LogLevel      string        `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	Mode          string        `yaml:"mode" env:"TTT_MODE" env-default:"web"`
	HTTPAddr      string        `yaml:"http-addr" env:"TTT_HTTP_ADDR" env-default:"127.0.0.1:8080"`
	GameTTL       time.Duration `yaml:"game-ttl" env:"TTT_GAME_TTL" env-default:"2h"`
	PruneInterval time.Duration `yaml:"prune-interval" env:"TTT_PRUNE_INTERVAL" env-default:"10m"`
	NoColor       bool          `yaml:"no-color" env:"TTT_NO_COLOR"`
}

// Load reads the config file at path, or only the environment when the file
// does not exist.
func Load(path string) (*Config, error) {
	conf := &Config{}

	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, conf)
	} else {
		err = cleanenv.ReadEnv(conf)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// MustLoad - like Load, but panics on error.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}
	return conf
}

// Validate checks the mode and the pruning durations.
func (that *Config) Validate() error {
	switch that.Mode {
	case ModeWeb, ModeTerm:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, that.Mode)
	}
	if that.GameTTL <= 0 {
		return fmt.Errorf("%w: game-ttl must be positive", ErrInvalidConfig)
	}
	if that.PruneInterval <= 0 {
		return fmt.Errorf("%w: prune-interval must be positive", ErrInvalidConfig)
	}
	return nil
}
