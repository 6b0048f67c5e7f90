package config

import (
	"os"
	"strconv"
	"time"

	"venturelens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Server   ServerConfig
	Reports  ReportConfig
}

// AIConfig holds model provider settings. A missing API key is not a
// configuration error: stages report themselves unavailable instead.
type AIConfig struct {
	GeminiKey       string
	Model           string
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

// DatabaseConfig holds optional Postgres settings used for critique and
// benchmark audit logs. An empty URL disables persistence.
type DatabaseConfig struct {
	URL            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

// CacheConfig holds optional Redis settings for the narrative cache.
// An empty address disables caching.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	NarrativeTTL  time.Duration
}

// ServerConfig holds web server settings. EvaluateTimeout bounds a full
// pipeline run on the evaluate endpoint.
type ServerConfig struct {
	Port            string
	GinMode         string
	EvaluateTimeout time.Duration
}

// ReportConfig holds report artifact settings
type ReportConfig struct {
	Dir     string
	BaseURL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		AI:       loadAIConfig(),
		Database: loadDatabaseConfig(),
		Cache:    loadCacheConfig(),
		Server:   loadServerConfig(),
		Reports:  loadReportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAIConfig() AIConfig {
	return AIConfig{
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		Model:           getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		MaxOutputTokens: getEnvIntOrDefault("MAX_OUTPUT_TOKENS", 4096),
		Temperature:     getEnvFloatOrDefault("TEMPERATURE", 0.4),
		Timeout:         getEnvDurationOrDefault("MODEL_TIMEOUT", 60*time.Second),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:            os.Getenv("DATABASE_URL"),
		MaxOpenConns:   getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		ConnectTimeout: getEnvDurationOrDefault("DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
		NarrativeTTL:  getEnvDurationOrDefault("NARRATIVE_CACHE_TTL", 24*time.Hour),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		EvaluateTimeout: getEnvDurationOrDefault("EVALUATE_TIMEOUT", 5*time.Minute),
	}
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		Dir:     getEnvOrDefault("REPORTS_DIR", "./reports"),
		BaseURL: getEnvOrDefault("REPORTS_BASE_URL", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Reports.Dir == "" {
		return errors.ConfigInvalid("reports directory is required")
	}
	if config.AI.MaxOutputTokens <= 0 {
		return errors.ConfigInvalid("MAX_OUTPUT_TOKENS must be positive")
	}
	if config.Cache.NarrativeTTL <= 0 {
		return errors.ConfigInvalid("NARRATIVE_CACHE_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
