package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freelancer-analyzer/llm"
)

var managedVars = []string{
	"DATA_PATH", "DATA_SOURCE", "APP_ENV", "LOG_LEVEL",
	"ANTHROPIC_API_KEY", "CLAUDE_MODEL", "CLAUDE_TEMPERATURE", "CLAUDE_MAX_TOKENS",
	"CLAUDE_TIMEOUT", "ANTHROPIC_BASE_URL", "SOCKS_PROXY", "HTTPS_PROXY", "HTTP_PROXY",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"POSTGRES_SSLMODE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL", "MAX_CONCURRENCY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, k := range managedVars {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "data/freelancer_earnings_bd.csv", cfg.DataPath)
	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, llm.DefaultModel, cfg.ClaudeModel)
	assert.Equal(t, llm.DefaultTemperature, cfg.ClaudeTemperature)
	assert.Equal(t, llm.DefaultMaxTokens, cfg.ClaudeMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.ClaudeTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Empty(t, cfg.ProxyURL)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", SourcePostgres)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CLAUDE_TEMPERATURE", "0.7")
	t.Setenv("CLAUDE_MAX_TOKENS", "not-a-number")
	t.Setenv("CLAUDE_TIMEOUT", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("POSTGRES_HOST", "db")

	cfg := Load()

	assert.Equal(t, SourcePostgres, cfg.DataSource)
	assert.Equal(t, 0.7, cfg.ClaudeTemperature)
	assert.Equal(t, llm.DefaultMaxTokens, cfg.ClaudeMaxTokens)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2, cfg.RedisConfig().DB)
	assert.Contains(t, cfg.DSN(), "host=db ")

	lc := cfg.LLMConfig()
	assert.Equal(t, "sk-test", lc.APIKey)
	assert.Equal(t, 5*time.Second, lc.Timeout)
}

func TestProxyPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PROXY", "http://plain:8080")
	assert.Equal(t, "http://plain:8080", Load().ProxyURL)

	t.Setenv("HTTPS_PROXY", "http://secure:8443")
	assert.Equal(t, "http://secure:8443", Load().ProxyURL)

	t.Setenv("SOCKS_PROXY", "socks5://tunnel:1080")
	assert.Equal(t, "socks5://tunnel:1080", Load().ProxyURL)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
