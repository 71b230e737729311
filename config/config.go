package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"freelancer-analyzer/cache"
	"freelancer-analyzer/llm"
)

// Data sources understood by the command line.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath   string
	DataSource string
	AppEnv     string
	LogLevel   string

	AnthropicAPIKey   string
	ClaudeModel       string
	ClaudeTemperature float64
	ClaudeMaxTokens   int
	ClaudeTimeout     time.Duration
	AnthropicBaseURL  string
	ProxyURL          string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	MaxConcurrency int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] Could not read .env file: %v", err)
	}

	return &Config{
		DataPath:   getEnv("DATA_PATH", "data/freelancer_earnings_bd.csv"),
		DataSource: getEnv("DATA_SOURCE", SourceCSV),
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeModel:       getEnv("CLAUDE_MODEL", llm.DefaultModel),
		ClaudeTemperature: getEnvFloat("CLAUDE_TEMPERATURE", llm.DefaultTemperature),
		ClaudeMaxTokens:   getEnvInt("CLAUDE_MAX_TOKENS", llm.DefaultMaxTokens),
		ClaudeTimeout:     time.Duration(getEnvInt("CLAUDE_TIMEOUT", int(llm.DefaultTimeout/time.Second))) * time.Second,
		AnthropicBaseURL:  getEnv("ANTHROPIC_BASE_URL", llm.DefaultBaseURL),
		ProxyURL:          firstEnv("SOCKS_PROXY", "HTTPS_PROXY", "HTTP_PROXY"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analyzer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analyzer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "freelancers"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL", 3600)) * time.Second,

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// LLMConfig returns the settings for llm.NewClient.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		APIKey:      c.AnthropicAPIKey,
		Model:       c.ClaudeModel,
		Temperature: c.ClaudeTemperature,
		MaxTokens:   c.ClaudeMaxTokens,
		Timeout:     c.ClaudeTimeout,
		BaseURL:     c.AnthropicBaseURL,
		ProxyURL:    c.ProxyURL,
	}
}

// RedisConfig returns the cache settings.
func (c *Config) RedisConfig() cache.RedisConfig {
	return cache.RedisConfig{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

// firstEnv returns the first non-empty variable among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if val := os.Getenv(k); val != "" {
			return val
		}
	}
	return ""
}
