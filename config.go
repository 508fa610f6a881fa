package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// ===== Configuration =====

const defaultConfigFile = "portfolio.toml"

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Pricing PricingConfig `toml:"pricing"`
	Logging LoggingConfig `toml:"logging"`
	Seed    SeedConfig    `toml:"seed"`
}

type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	ShutdownTimeout string   `toml:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c ServerConfig) GetShutdownTimeout() time.Duration {
	return durationOr(c.ShutdownTimeout, 10*time.Second)
}

// StorageConfig selects the repository backend: memory, csv, sqlite or redis.
type StorageConfig struct {
	Kind       string      `toml:"kind"`
	DataDir    string      `toml:"data_dir"`
	SQLitePath string      `toml:"sqlite_path"`
	Redis      RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// PricingConfig selects the quote source: none, static or yahoo.
type PricingConfig struct {
	Provider    string      `toml:"provider"`
	RefCurrency string      `toml:"ref_currency"`
	CacheTTL    string      `toml:"cache_ttl"`
	Yahoo       YahooConfig `toml:"yahoo"`
}

func (c PricingConfig) GetCacheTTL() time.Duration {
	return durationOr(c.CacheTTL, 60*time.Second)
}

type YahooConfig struct {
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"` // requests per second
	Timeout   string  `toml:"timeout"`
}

func (c YahooConfig) GetTimeout() time.Duration {
	return durationOr(c.Timeout, 8*time.Second)
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json | console
}

type SeedConfig struct {
	Sample bool `toml:"sample"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: "10s",
		},
		Storage: StorageConfig{
			Kind:       "csv",
			DataDir:    "./data",
			SQLitePath: "./data/portfolio.db",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "portfolio:",
			},
		},
		Pricing: PricingConfig{
			Provider:    "none",
			RefCurrency: "USD",
			CacheTTL:    "60s",
			Yahoo: YahooConfig{
				BaseURL:   "https://query2.finance.yahoo.com",
				RateLimit: 2,
				Timeout:   "8s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: SeedConfig{Sample: true},
	}
}

// LoadConfig applies, in order: defaults, each existing TOML file in paths,
// a .env file in the working directory and finally the environment.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the process
	_ = godotenv.Load()

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := firstEnv("PORTFOLIO_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := firstEnv("PORTFOLIO_PORT", "PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			config.Server.Port = p
		}
	}
	if v := firstEnv("PORTFOLIO_ALLOWED_ORIGINS"); v != "" {
		config.Server.AllowedOrigins = splitList(v)
	}

	if v := firstEnv("PORTFOLIO_STORAGE", "REPO_KIND"); v != "" {
		config.Storage.Kind = v
	}
	if v := firstEnv("PORTFOLIO_DATA_DIR", "DATA_DIR"); v != "" {
		config.Storage.DataDir = v
		config.Storage.SQLitePath = filepath.Join(v, "portfolio.db")
	}
	if v := firstEnv("PORTFOLIO_SQLITE_PATH"); v != "" {
		config.Storage.SQLitePath = v
	}
	if v := firstEnv("PORTFOLIO_REDIS_ADDR"); v != "" {
		config.Storage.Redis.Addr = v
	}
	if v := firstEnv("PORTFOLIO_REDIS_PASSWORD"); v != "" {
		config.Storage.Redis.Password = v
	}
	if v := firstEnv("PORTFOLIO_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Storage.Redis.DB = n
		}
	}

	if v := firstEnv("PORTFOLIO_PRICE_PROVIDER", "PRICE_PROVIDER"); v != "" {
		config.Pricing.Provider = v
	}
	if v := firstEnv("PORTFOLIO_REF_CCY", "REF_CCY"); v != "" {
		config.Pricing.RefCurrency = v
	}

	if v := firstEnv("PORTFOLIO_LOG_LEVEL", "LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := firstEnv("PORTFOLIO_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}

	if v := firstEnv("PORTFOLIO_SEED_SAMPLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Seed.Sample = b
		}
	}
}

// Validate normalises enum fields and rejects unknown values.
func (c *Config) Validate() error {
	c.Storage.Kind = strings.ToLower(strings.TrimSpace(c.Storage.Kind))
	switch c.Storage.Kind {
	case "memory", "csv", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown storage kind %q (use memory, csv, sqlite or redis)", c.Storage.Kind)
	}

	c.Pricing.Provider = strings.ToLower(strings.TrimSpace(c.Pricing.Provider))
	switch c.Pricing.Provider {
	case "", "none":
		c.Pricing.Provider = "none"
	case "static", "yahoo":
	default:
		return fmt.Errorf("unknown price provider %q (use none, static or yahoo)", c.Pricing.Provider)
	}

	c.Pricing.RefCurrency = strings.ToUpper(strings.TrimSpace(c.Pricing.RefCurrency))
	if c.Pricing.RefCurrency == "" {
		c.Pricing.RefCurrency = "USD"
	}
	if money.GetCurrency(c.Pricing.RefCurrency) == nil {
		return fmt.Errorf("unknown reference currency %q", c.Pricing.RefCurrency)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func durationOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
