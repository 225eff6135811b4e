// Package config provides environment-driven configuration for the pathtrace server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values.
type Config struct {
	MapFile       string   `yaml:"map_file"`
	ListenHost    string   `yaml:"listen_host"`
	Port          string   `yaml:"port"`
	LogLevel      string   `yaml:"log_level"`
	LogFormat     string   `yaml:"log_format"`
	CORSOrigins   []string `yaml:"cors_origins"`
	SearchWorkers int      `yaml:"search_workers"`
	RunCacheSize  int      `yaml:"run_cache_size"`
	RateLimit     float64  `yaml:"rate_limit"`
	RateBurst     int      `yaml:"rate_burst"`
	WatchMap      bool     `yaml:"watch_map"`
	TraceExporter string   `yaml:"trace_exporter"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		ListenHost:    "127.0.0.1",
		Port:          "8080",
		LogLevel:      "info",
		LogFormat:     "text",
		CORSOrigins:   []string{"http://localhost:8080"},
		SearchWorkers: 4,
		RunCacheSize:  256,
		RateLimit:     50,
		RateBurst:     100,
		TraceExporter: "none",
	}
}

// Override adjusts a loaded configuration before validation, e.g. from CLI flags.
type Override func(*Config)

// Load builds the configuration from defaults, then the optional YAML file
// at path, then environment variables, then overrides.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func (c *Config) applyEnv() error {
	c.MapFile = envOrDefault("PATHTRACE_MAP", c.MapFile)
	c.ListenHost = envOrDefault("LISTEN_HOST", c.ListenHost)
	c.Port = envOrDefault("PORT", c.Port)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOrDefault("LOG_FORMAT", c.LogFormat)
	c.TraceExporter = envOrDefault("TRACE_EXPORTER", c.TraceExporter)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = strings.Split(origins, ",")
	}
	for i, o := range c.CORSOrigins {
		c.CORSOrigins[i] = strings.TrimSpace(o)
	}

	var err error
	if c.SearchWorkers, err = envInt("SEARCH_WORKERS", c.SearchWorkers); err != nil {
		return err
	}
	if c.RunCacheSize, err = envInt("RUN_CACHE_SIZE", c.RunCacheSize); err != nil {
		return err
	}
	if c.RateBurst, err = envInt("RATE_BURST", c.RateBurst); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT must be a number: %w", err)
		}
		c.RateLimit = parsed
	}
	if v := os.Getenv("WATCH_MAP"); v != "" {
		c.WatchMap = v == "true" || v == "1"
	}

	return nil
}

func (c *Config) validate() error {
	if c.MapFile == "" {
		return fmt.Errorf("PATHTRACE_MAP is required")
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}

	if c.SearchWorkers < 1 || c.SearchWorkers > 64 {
		return fmt.Errorf("SEARCH_WORKERS must be between 1 and 64")
	}

	if c.RunCacheSize < 1 {
		return fmt.Errorf("RUN_CACHE_SIZE must be positive")
	}

	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive")
	}

	for _, o := range c.CORSOrigins {
		if o == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain a wildcard")
		}
	}

	switch c.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("TRACE_EXPORTER must be none or stdout, got %q", c.TraceExporter)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
