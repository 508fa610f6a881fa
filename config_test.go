package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates tests from a .env file in the package directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := LoadConfig("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "csv", cfg.Storage.Kind)
	assert.Equal(t, "none", cfg.Pricing.Provider)
	assert.Equal(t, "USD", cfg.Pricing.RefCurrency)
	assert.Equal(t, 60*time.Second, cfg.Pricing.GetCacheTTL())
	assert.True(t, cfg.Seed.Sample)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "portfolio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090
allowed_origins = ["http://localhost:3000"]

[storage]
kind = "SQLite"
sqlite_path = "/tmp/p.db"

[pricing]
provider = "static"
ref_currency = "eur"
cache_ttl = "5m"

[seed]
sample = false
`), 0o644))

	t.Setenv("PORTFOLIO_PORT", "7070")
	t.Setenv("REPO_KIND", "memory")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, ":7070", cfg.Server.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "memory", cfg.Storage.Kind)
	assert.Equal(t, "static", cfg.Pricing.Provider)
	assert.Equal(t, "EUR", cfg.Pricing.RefCurrency)
	assert.Equal(t, 5*time.Minute, cfg.Pricing.GetCacheTTL())
	assert.False(t, cfg.Seed.Sample)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PRICE_PROVIDER=yahoo\nDATA_DIR=/var/lib/pt\n"), 0o644))
	// godotenv sets variables for the process; restore them afterwards
	t.Setenv("PRICE_PROVIDER", "")
	t.Setenv("DATA_DIR", "")
	os.Unsetenv("PRICE_PROVIDER")
	os.Unsetenv("DATA_DIR")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "yahoo", cfg.Pricing.Provider)
	assert.Equal(t, "/var/lib/pt", cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join("/var/lib/pt", "portfolio.db"), cfg.Storage.SQLitePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := chdirTemp(t)

	t.Setenv("PORTFOLIO_STORAGE", "mongo")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unknown storage kind")

	t.Setenv("PORTFOLIO_STORAGE", "memory")
	t.Setenv("PORTFOLIO_PRICE_PROVIDER", "bloomberg")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unknown price provider")

	t.Setenv("PORTFOLIO_PRICE_PROVIDER", "static")
	t.Setenv("PORTFOLIO_REF_CCY", "xyz")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unknown reference currency \"XYZ\"")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server\nport ="), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestConfig_ValidateRefCurrency(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Pricing.RefCurrency = " eur "
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "EUR", cfg.Pricing.RefCurrency)

	cfg.Pricing.RefCurrency = "ABC"
	assert.Error(t, cfg.Validate())
}
