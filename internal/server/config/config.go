package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Address     string   `yaml:"address" env:"ADDRESS"`
	AddressGRPC string   `yaml:"address_grpc" env:"ADDRESS_GRPC"`
	Backends    []string `yaml:"backends" env:"BACKENDS" envSeparator:","`

	MongoURL      string `yaml:"mongo_url" env:"MONGO_DATABASE_URL"`
	MongoDatabase string `yaml:"mongo_database" env:"MONGO_DATABASE"`

	PostgresURL             string `yaml:"postgres_url" env:"POSTGRES_DATABASE_URL"`
	PostgresMaxConns        int    `yaml:"postgres_max_conns" env:"POSTGRES_MAX_CONNS"`
	PostgresConnectAttempts int    `yaml:"postgres_connect_attempts" env:"POSTGRES_CONNECT_ATTEMPTS"`

	SurrealURL       string `yaml:"surreal_url" env:"SURREAL_DATABASE_URL"`
	SurrealUser      string `yaml:"surreal_user" env:"SURREAL_USER"`
	SurrealPass      string `yaml:"surreal_pass" env:"SURREAL_PASS"`
	SurrealNamespace string `yaml:"surreal_namespace" env:"SURREAL_NAMESPACE"`
	SurrealDatabase  string `yaml:"surreal_database" env:"SURREAL_DATABASE"`

	LevelDBPath string `yaml:"leveldb_path" env:"LEVELDB_PATH"`
	PebblePath  string `yaml:"pebble_path" env:"PEBBLE_PATH"`

	MidgardURL      string `yaml:"midgard_url" env:"MIDGARD_URL"`
	MidgardPool     string `yaml:"midgard_pool" env:"MIDGARD_POOL"`
	MidgardInterval string `yaml:"midgard_interval" env:"MIDGARD_INTERVAL"`
	MidgardCount    int    `yaml:"midgard_count" env:"MIDGARD_COUNT"`

	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`

	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
	RedisKey      string `yaml:"redis_key" env:"REDIS_KEY"`
}

type Config struct {
	Settings Settings `yaml:"settings"`
}

func defaults() *Config {
	return &Config{Settings: Settings{
		Address:                 ":3000",
		AddressGRPC:             ":3200",
		Backends:                []string{"mongodb", "postgres", "surrealdb", "leveldb", "pebble"},
		MongoDatabase:           "database_metrics",
		PostgresMaxConns:        5,
		PostgresConnectAttempts: 1,
		LevelDBPath:             "leveldb/data",
		PebblePath:              "data/pebble",
		MidgardURL:              "https://midgard.ninerealms.com",
		MidgardPool:             "BTC.BTC",
		MidgardInterval:         "hour",
		MidgardCount:            400,
		MetricsFile:             "performance-metrics.txt",
	}}
}

// GetConfig читает конфигурацию из аргументов командной строки и окружения.
func GetConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load собирает конфигурацию: значения по умолчанию, затем yaml-файл
// из CONFIG_FILE, затем флаги, затем переменные окружения.
func Load(args []string) (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	backends := fs.String("b", strings.Join(cfg.Settings.Backends, ","), "comma separated backends")
	fs.StringVar(&cfg.Settings.Address, "a", cfg.Settings.Address, "address for server listen")
	fs.StringVar(&cfg.Settings.AddressGRPC, "g", cfg.Settings.AddressGRPC, "address for grpc listen, empty disables grpc")
	fs.StringVar(&cfg.Settings.MetricsFile, "f", cfg.Settings.MetricsFile, "file for timings")
	fs.StringVar(&cfg.Settings.LevelDBPath, "leveldb", cfg.Settings.LevelDBPath, "leveldb directory")
	fs.StringVar(&cfg.Settings.PebblePath, "pebble", cfg.Settings.PebblePath, "pebble directory")
	fs.StringVar(&cfg.Settings.MidgardURL, "m", cfg.Settings.MidgardURL, "midgard base url")
	fs.IntVar(&cfg.Settings.MidgardCount, "n", cfg.Settings.MidgardCount, "intervals per request")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Settings.Backends = strings.Split(*backends, ",")

	if err := env.Parse(&cfg.Settings); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}

	cfg.Settings.Backends = normalize(cfg.Settings.Backends)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.Settings.Address == "":
		return errors.New("empty address")
	case len(c.Settings.Backends) == 0:
		return errors.New("no backends configured")
	case c.Settings.MidgardCount < 1:
		return fmt.Errorf("midgard count must be positive, got %d", c.Settings.MidgardCount)
	}
	return nil
}

func normalize(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
