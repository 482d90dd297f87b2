package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseAndRedis(t *testing.T) {
	_, err := LoadForTests(map[string]string{"DATABASE_URL": "", "REDIS_URL": ""})
	require.Error(t, err)

	_, err = LoadForTests(map[string]string{"DATABASE_URL": "postgres://localhost/kasir", "REDIS_URL": ""})
	require.EqualError(t, err, "REDIS_URL is required")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":            "postgres://localhost/kasir",
		"REDIS_URL":               "redis://localhost:6379/0",
		"POS_SESSION_TTL":         "",
		"POS_DEFAULT_TAX_PERCENT": "",
		"POS_STORE_URL":           "",
		"RATE_LIMIT_SALES":        "",
		"PORT":                    "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 12*time.Hour, cfg.POSSessionTTL)
	require.True(t, cfg.POSDefaultTaxPercent.IsZero())
	require.Equal(t, "30-M", cfg.RateLimitSales)
	require.False(t, cfg.RemoteStore())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":               "postgres://localhost/kasir",
		"REDIS_URL":                  "redis://localhost:6379/0",
		"POS_DEFAULT_TAX_PERCENT":    "11",
		"POS_STORE_URL":              "http://store.internal/api/v1/",
		"CIRCUIT_STORE_FAILURE_RATE": "0.25",
		"CORS_ALLOWED_ORIGINS":       "http://a.test, http://b.test",
		"CATALOG_CACHE_TTL":          "bogus",
	})
	require.NoError(t, err)
	require.Equal(t, "11", cfg.POSDefaultTaxPercent.String())
	require.Equal(t, "http://store.internal/api/v1", cfg.POSStoreURL)
	require.True(t, cfg.RemoteStore())
	require.Equal(t, 0.25, cfg.StoreBreakerFailRate)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	require.Equal(t, time.Minute, cfg.CatalogCacheTTL)
}

func TestLoadRejectsNegativeTax(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL":            "postgres://localhost/kasir",
		"REDIS_URL":               "redis://localhost:6379/0",
		"POS_DEFAULT_TAX_PERCENT": "-1",
	})
	require.Error(t, err)
}
