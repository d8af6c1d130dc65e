package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFiles_EnvOverridesJSON(t *testing.T) {
	require.NoError(t, Load())

	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"DB_DRIVER":"postgres","ANALYTICS_WINDOW_MONTHS":12,"APP_PORT":"9000"}`)
	envPath := writeFile(t, dir, ".env", "APP_PORT=\"9100\"\n# comment\nANALYTICS_CACHE_TTL=30s\n")

	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Equal(t, "9100", AppPort())
	assert.Equal(t, 12, AnalyticsWindowMonths())
	assert.Equal(t, 30*time.Second, AnalyticsCacheTTL())
}

func TestLoadFromFiles_MissingFilesUseDefaults(t *testing.T) {
	require.NoError(t, Load())

	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".env")))

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, "bookstore.db", DatabaseDSN())
	assert.Equal(t, 6, AnalyticsWindowMonths())
	assert.Equal(t, 4, AnalyticsTopCategories())
	assert.Equal(t, 5*time.Minute, AnalyticsCacheTTL())
}

func TestInvalidValuesFallBack(t *testing.T) {
	require.NoError(t, Load())

	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "DB_DRIVER=oracle\nANALYTICS_WINDOW_MONTHS=-2\nRATE_LIMIT_PER_MINUTE=lots\n")
	require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), envPath))

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, 6, AnalyticsWindowMonths())
	assert.Equal(t, 200, RateLimitPerMinute())
}

func TestOSEnvironmentWins(t *testing.T) {
	require.NoError(t, Load())

	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "ANALYTICS_TOP_CATEGORIES=6\n")
	require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), envPath))

	t.Setenv("ANALYTICS_TOP_CATEGORIES", "3")
	assert.Equal(t, 3, AnalyticsTopCategories())
}

func TestCORSOrigins(t *testing.T) {
	require.NoError(t, Load())

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://admin.example.com, ,https://shop.example.com ")
	assert.Equal(t, []string{"https://admin.example.com", "https://shop.example.com"}, CORSOrigins())

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	assert.Equal(t, []string{"*"}, CORSOrigins())
}

func TestTrustedProxies(t *testing.T) {
	require.NoError(t, Load())

	t.Setenv("TRUSTED_PROXIES", "")
	assert.Empty(t, TrustedProxies())

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.4,")
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.4"}, TrustedProxies())
}
