package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the estimator server
type Config struct {
	ServerAddr      string        `yaml:"server_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	ZonesFile           string  `yaml:"zones_file"`
	PricePerSquareMeter float64 `yaml:"price_per_sqm"`
	NamePrefix          string  `yaml:"name_prefix"`
	IDSource            string  `yaml:"id_source"`

	DispatchURL     string        `yaml:"dispatch_url"`
	DispatchTimeout time.Duration `yaml:"dispatch_timeout"`
}

// defaultConfig returns the built-in settings
func defaultConfig() *Config {
	return &Config{
		ServerAddr:          ":8080",
		ReadTimeout:         15 * time.Second,
		WriteTimeout:        15 * time.Second,
		IdleTimeout:         60 * time.Second,
		ShutdownTimeout:     30 * time.Second,
		PricePerSquareMeter: DefaultPricePerSquareMeter,
		NamePrefix:          "Polygon",
		IDSource:            "uuid",
		DispatchTimeout:     10 * time.Second,
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// named by CONFIG_FILE, and environment variables (a .env file is loaded
// first if present). Environment variables win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️  No .env file loaded (using environment only): %v\n", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ServerAddr = getEnv("SERVER_ADDR", cfg.ServerAddr)
	cfg.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = getDurationEnv("SERVER_IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.ShutdownTimeout = getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.ZonesFile = getEnv("NFZ_FILE", cfg.ZonesFile)
	cfg.PricePerSquareMeter = getFloatEnv("PRICE_PER_SQM", cfg.PricePerSquareMeter)
	cfg.NamePrefix = getEnv("POLYGON_NAME_PREFIX", cfg.NamePrefix)
	cfg.IDSource = getEnv("ID_SOURCE", cfg.IDSource)
	cfg.DispatchURL = getEnv("DISPATCH_URL", cfg.DispatchURL)
	cfg.DispatchTimeout = getDurationEnv("DISPATCH_TIMEOUT", cfg.DispatchTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("server address is required")
	}
	if c.PricePerSquareMeter < 0 {
		return fmt.Errorf("price per square meter must not be negative, got %v", c.PricePerSquareMeter)
	}
	switch c.IDSource {
	case "uuid", "time", "counter":
	default:
		return fmt.Errorf("unknown id source %q", c.IDSource)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("⚠️  Ignoring invalid %s=%q\n", key, value)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("⚠️  Ignoring invalid %s=%q\n", key, value)
	}
	return defaultValue
}
