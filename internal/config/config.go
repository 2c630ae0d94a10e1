package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game   `yaml:"game"`
	Redis    Redis  `yaml:"redis"`
}

type Game struct {
	Rows      int `yaml:"rows" env:"GAME_ROWS" env-default:"3"`
	Cols      int `yaml:"cols" env:"GAME_COLS" env-default:"3"`
	WinLength int `yaml:"win-length" env:"GAME_WIN_LENGTH" env-default:"0"`

	// Start - who moves first in the first game: random, human or computer.
	Start string `yaml:"start" env:"GAME_START" env-default:"random"`
	// SearchOpening - search on an empty board too instead of playing a random cell.
	SearchOpening  bool `yaml:"search-opening" env:"GAME_SEARCH_OPENING" env-default:"false"`
	HumanMaximizes bool `yaml:"human-maximizes" env:"GAME_HUMAN_MAXIMIZES" env-default:"false"`
	// Seed - random seed, 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`

	HumanID      int    `yaml:"human-id" env-default:"1"`
	HumanMark    string `yaml:"human-mark" env-default:"O"`
	HumanName    string `yaml:"human-name" env-default:""`
	ComputerID   int    `yaml:"computer-id" env-default:"2"`
	ComputerMark string `yaml:"computer-mark" env-default:"X"`
	ComputerName string `yaml:"computer-name" env-default:""`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
