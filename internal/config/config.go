package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/incubazar/venture-calc/internal/db"
	"github.com/incubazar/venture-calc/internal/resilience"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Policy PolicyConfig `yaml:"policy" mapstructure:"policy"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// StoreConfig configures calculation history persistence.
type StoreConfig struct {
	Driver      string                   `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string                   `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string                   `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	Pool        db.PoolConfig            `yaml:"pool" mapstructure:"pool"`
	Retry       resilience.RetryConfig   `yaml:"retry" mapstructure:"retry"`
	Breaker     resilience.BreakerConfig `yaml:"breaker" mapstructure:"breaker"`
}

// Enabled reports whether a history store is configured.
func (s StoreConfig) Enabled() bool {
	return s.Driver != "" && s.Driver != DriverNone
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int             `yaml:"port" mapstructure:"port"`
	CORSOrigins     []string        `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// RateLimitConfig is a per-client token bucket. RPS of zero disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" mapstructure:"rps"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// BatchConfig configures batch workbook processing.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// PolicyConfig points at an optional YAML overlay of calculator policy tables.
type PolicyConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VENTURECALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	retry := resilience.DefaultRetryConfig()
	breaker := resilience.DefaultBreakerConfig()
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.sqlite_path", "venture-calc.db")
	v.SetDefault("store.pool.max_conns", 10)
	v.SetDefault("store.pool.min_conns", 0)
	v.SetDefault("store.retry.max_attempts", retry.MaxAttempts)
	v.SetDefault("store.retry.initial_backoff", retry.InitialBackoff)
	v.SetDefault("store.retry.max_backoff", retry.MaxBackoff)
	v.SetDefault("store.retry.multiplier", retry.Multiplier)
	v.SetDefault("store.retry.jitter_fraction", retry.JitterFraction)
	v.SetDefault("store.breaker.failures", breaker.Failures)
	v.SetDefault("store.breaker.cooldown", breaker.Cooldown)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit.rps", 10.0)
	v.SetDefault("server.rate_limit.burst", 20)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("batch.max_concurrent", 5)
	v.SetDefault("policy.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode depends on. Modes: "cli" for
// one-shot calculations, "store" for commands that need history, and
// "serve" for the HTTP API.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "cli":
	case "store":
		if !c.Store.Enabled() {
			errs = append(errs, "store.driver must not be none")
		}
		errs = append(errs, c.validateStore()...)
	case "serve":
		errs = append(errs, c.validateStore()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimit.RPS < 0 {
			errs = append(errs, "server.rate_limit.rps must be >= 0")
		}
		if c.Server.RateLimit.RPS > 0 && c.Server.RateLimit.Burst < 1 {
			errs = append(errs, "server.rate_limit.burst must be >= 1 when rps is set")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > 50 {
		errs = append(errs, fmt.Sprintf("batch.max_concurrent must be between 1 and 50, got %d", c.Batch.MaxConcurrent))
	}

	if len(errs) > 0 {
		return eris.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateStore() []string {
	var errs []string
	switch c.Store.Driver {
	case DriverNone:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, "store.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for the postgres driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite, postgres or none, got %q", c.Store.Driver))
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
