package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// No config.yaml in the temp dir
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "venture-calc.db", cfg.Store.SQLitePath)
	assert.Empty(t, cfg.Store.DatabaseURL)
	assert.Equal(t, int32(10), cfg.Store.Pool.MaxConns)
	assert.Equal(t, 5, cfg.Store.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Store.Retry.InitialBackoff)
	assert.Equal(t, 8*time.Second, cfg.Store.Retry.MaxBackoff)
	assert.Equal(t, 5, cfg.Store.Breaker.Failures)
	assert.Equal(t, 30*time.Second, cfg.Store.Breaker.Cooldown)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.InDelta(t, 10.0, cfg.Server.RateLimit.RPS, 0.001)
	assert.Equal(t, 20, cfg.Server.RateLimit.Burst)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrent)
	assert.Empty(t, cfg.Policy.File)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/calc
  retry:
    max_attempts: 2
    initial_backoff: 250ms
log:
  level: debug
  format: console
server:
  port: 9090
  rate_limit:
    rps: 0
batch:
  max_concurrent: 10
policy:
  file: policy.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/calc", cfg.Store.DatabaseURL)
	assert.Equal(t, 2, cfg.Store.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.Retry.InitialBackoff)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Zero(t, cfg.Server.RateLimit.RPS)
	assert.Equal(t, 10, cfg.Batch.MaxConcurrent)
	assert.Equal(t, "policy.yaml", cfg.Policy.File)
	// Defaults still apply for unset values
	assert.Equal(t, 8*time.Second, cfg.Store.Retry.MaxBackoff)
	assert.Equal(t, 20, cfg.Server.RateLimit.Burst)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("VENTURECALC_STORE_DRIVER", "postgres")
	t.Setenv("VENTURECALC_STORE_DATABASE_URL", "postgres://env/calc")
	t.Setenv("VENTURECALC_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://env/calc", cfg.Store.DatabaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("VENTURECALC_SERVER_PORT", "3000")
	t.Setenv("VENTURECALC_BATCH_MAX_CONCURRENT", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Batch.MaxConcurrent)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = DriverSQLite
	cfg.Store.SQLitePath = "calc.db"
	cfg.Batch.MaxConcurrent = 5
	cfg.Server.Port = 8080
	cfg.Server.RateLimit = RateLimitConfig{RPS: 10, Burst: 20}
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "cli defaults", mode: "cli"},
		{name: "cli without store", mode: "cli", mutate: func(c *Config) { c.Store.Driver = DriverNone }},
		{name: "serve defaults", mode: "serve"},
		{name: "serve without store", mode: "serve", mutate: func(c *Config) { c.Store.Driver = DriverNone }},
		{name: "store sqlite", mode: "store"},
		{
			name:    "store requires driver",
			mode:    "store",
			mutate:  func(c *Config) { c.Store.Driver = DriverNone },
			wantErr: "store.driver must not be none",
		},
		{
			name:    "postgres requires url",
			mode:    "store",
			mutate:  func(c *Config) { c.Store.Driver = DriverPostgres },
			wantErr: "store.database_url is required",
		},
		{
			name: "postgres with url",
			mode: "store",
			mutate: func(c *Config) {
				c.Store.Driver = DriverPostgres
				c.Store.DatabaseURL = "postgres://localhost/calc"
			},
		},
		{
			name:    "sqlite requires path",
			mode:    "serve",
			mutate:  func(c *Config) { c.Store.SQLitePath = "" },
			wantErr: "store.sqlite_path is required",
		},
		{
			name:    "unknown driver",
			mode:    "serve",
			mutate:  func(c *Config) { c.Store.Driver = "mysql" },
			wantErr: `store.driver must be sqlite, postgres or none, got "mysql"`,
		},
		{
			name:    "port zero",
			mode:    "serve",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port must be > 0",
		},
		{
			name:    "port too large",
			mode:    "serve",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be > 0",
		},
		{
			name:    "negative rps",
			mode:    "serve",
			mutate:  func(c *Config) { c.Server.RateLimit.RPS = -1 },
			wantErr: "server.rate_limit.rps must be >= 0",
		},
		{
			name:    "burst required with rps",
			mode:    "serve",
			mutate:  func(c *Config) { c.Server.RateLimit.Burst = 0 },
			wantErr: "server.rate_limit.burst must be >= 1",
		},
		{
			name:   "limiter disabled",
			mode:   "serve",
			mutate: func(c *Config) { c.Server.RateLimit = RateLimitConfig{} },
		},
		{
			name:    "concurrency lower bound",
			mode:    "cli",
			mutate:  func(c *Config) { c.Batch.MaxConcurrent = 0 },
			wantErr: "batch.max_concurrent must be between 1 and 50",
		},
		{
			name:    "concurrency upper bound",
			mode:    "cli",
			mutate:  func(c *Config) { c.Batch.MaxConcurrent = 51 },
			wantErr: "batch.max_concurrent must be between 1 and 50",
		},
		{name: "concurrency at bound", mode: "cli", mutate: func(c *Config) { c.Batch.MaxConcurrent = 50 }},
		{name: "unknown mode", mode: "unknown", wantErr: "unknown mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validDefaults()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate(tt.mode)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()
	cfg := validDefaults()
	cfg.Server.Port = 0
	cfg.Batch.MaxConcurrent = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "batch.max_concurrent")
}

func TestStoreEnabled(t *testing.T) {
	t.Parallel()
	assert.True(t, StoreConfig{Driver: DriverSQLite}.Enabled())
	assert.True(t, StoreConfig{Driver: DriverPostgres}.Enabled())
	assert.False(t, StoreConfig{Driver: DriverNone}.Enabled())
	assert.False(t, StoreConfig{}.Enabled())
}
