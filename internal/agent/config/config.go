package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Settings struct {
		Address       string        `yaml:"address" env:"ADDRESS"`
		AddressGRPC   string        `yaml:"address_grpc" env:"ADDRESS_GRPC"`
		FetchInterval time.Duration `yaml:"fetch_interval" env:"FETCH_INTERVAL"`
		ReadAfter     bool          `yaml:"read_after" env:"READ_AFTER"`
	} `yaml:"settings"`
}

func NewConfig() *Config {
	cfg := &Config{}
	cfg.Settings.Address = "http://127.0.0.1:3000"
	cfg.Settings.FetchInterval = time.Hour
	cfg.Settings.ReadAfter = true
	return cfg
}

// ApplyEnv переопределяет значения из флагов переменными окружения.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(&c.Settings); err != nil {
		return err
	}
	if c.Settings.Address == "" {
		return errors.New("empty server address")
	}
	if c.Settings.FetchInterval <= 0 {
		return errors.New("fetch interval must be positive")
	}
	return nil
}
