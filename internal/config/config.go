// Package config assembles the API server configuration.
//
// Values are layered in this order, later sources winning:
//  1. built-in defaults
//  2. a YAML file named by -config or $CINEMA_CONFIG
//  3. CINEMA_* environment variables
//  4. command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// usageOutput receives the flag usage text for -h.
var usageOutput io.Writer = os.Stderr

type Config struct {
	Port           int     `yaml:"port" env:"CINEMA_PORT"`
	Env            string  `yaml:"env" env:"CINEMA_ENV"`
	LogLevel       string  `yaml:"log_level" env:"CINEMA_LOG_LEVEL"`
	MigrationsPath string  `yaml:"migrations_path" env:"CINEMA_MIGRATIONS_PATH"`
	DB             DB      `yaml:"db"`
	Limiter        Limiter `yaml:"limiter"`

	ShowVersion bool `yaml:"-"`
}

type DB struct {
	DSN          string `yaml:"dsn" env:"CINEMA_DB_DSN"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"CINEMA_DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `yaml:"max_idle_conns" env:"CINEMA_DB_MAX_IDLE_CONNS"`
	MaxIdleTime  string `yaml:"max_idle_time" env:"CINEMA_DB_MAX_IDLE_TIME"`
}

type Limiter struct {
	RPS     float64 `yaml:"rps" env:"CINEMA_LIMITER_RPS"`
	Burst   int     `yaml:"burst" env:"CINEMA_LIMITER_BURST"`
	Enabled bool    `yaml:"enabled" env:"CINEMA_LIMITER_ENABLED"`
}

func Default() *Config {
	return &Config{
		Port:           4000,
		Env:            "development",
		LogLevel:       "info",
		MigrationsPath: "file://migrations",
		DB: DB{
			MaxOpenConns: 25,
			MaxIdleConns: 25,
			MaxIdleTime:  "15m",
		},
		Limiter: Limiter{
			RPS:     2,
			Burst:   4,
			Enabled: true,
		},
	}
}

// Load builds a Config from args (without the program name) and the process
// environment.
func Load(args []string) (*Config, error) {
	// First pass only locates the config file; the scratch values are dropped.
	pre := flag.NewFlagSet("cinema", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	var path string
	bindFlags(pre, Default(), &path)
	if err := pre.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(usageOutput, "Usage of %s:\n", pre.Name())
			pre.SetOutput(usageOutput)
			pre.PrintDefaults()
		}
		return nil, err
	}
	if path == "" {
		path = os.Getenv("CINEMA_CONFIG")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Flags registered with the current values as defaults, so only flags
	// given explicitly change anything.
	fs := flag.NewFlagSet("cinema", flag.ContinueOnError)
	bindFlags(fs, cfg, &path)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config, path *string) {
	fs.StringVar(path, "config", *path, "Path to a YAML config file")

	fs.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development|staging|production)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (info|error|fatal|off)")
	fs.StringVar(&cfg.MigrationsPath, "migrations", cfg.MigrationsPath, "Migrations source URL")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", cfg.DB.DSN, "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", cfg.DB.MaxOpenConns, "PostgreSQL max open connections")
	fs.IntVar(&cfg.DB.MaxIdleConns, "db-max-idle-conns", cfg.DB.MaxIdleConns, "PostgreSQL max idle connections")
	fs.StringVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", cfg.DB.MaxIdleTime, "PostgreSQL max connection idle time")

	fs.Float64Var(&cfg.Limiter.RPS, "limiter-rps", cfg.Limiter.RPS, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.Limiter.Burst, "limiter-burst", cfg.Limiter.Burst, "Rate limiter maximum burst")
	fs.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", cfg.Limiter.Enabled, "Enable rate limiter")

	fs.BoolVar(&cfg.ShowVersion, "version", cfg.ShowVersion, "Display version and exit")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// IdleTimeout parses DB.MaxIdleTime.
func (c *Config) IdleTimeout() (time.Duration, error) {
	return time.ParseDuration(c.DB.MaxIdleTime)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db dsn must be provided"))
	}
	if _, err := c.IdleTimeout(); err != nil {
		errs = append(errs, fmt.Errorf("db max idle time: %w", err))
	}
	if c.Limiter.Enabled && (c.Limiter.RPS <= 0 || c.Limiter.Burst <= 0) {
		errs = append(errs, errors.New("limiter rps and burst must be positive"))
	}
	return errors.Join(errs...)
}
