package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogFormat string
	LogLevel  string

	Catalog   CatalogConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// CatalogConfig selects where milestone and activity data is loaded from.
// Empty paths fall back to the embedded defaults; a non-empty MilestonesDSN
// takes precedence over MilestonesPath.
type CatalogConfig struct {
	MilestonesPath      string
	MilestonesDSN       string
	ActivitiesPath      string
	RecommendationsPath string
}

// RedisConfig configures the optional Redis client backing the chat rate limiter.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig bounds requests per client IP on the public chat endpoint.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// DefaultAllowedOrigins covers the local web and Expo development servers.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:19000",
	"http://localhost:19006",
	"exp://localhost:19000",
}

// Load reads a .env file when present and then builds the config from the
// environment.
func Load() Server {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:      getEnvOrDefault("NURTURE_ADDR", ":8000"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		Catalog: CatalogConfig{
			MilestonesPath:      os.Getenv("MILESTONES_PATH"),
			MilestonesDSN:       os.Getenv("MILESTONES_DSN"),
			ActivitiesPath:      os.Getenv("ACTIVITIES_PATH"),
			RecommendationsPath: os.Getenv("RECOMMENDATIONS_PATH"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			Enabled: os.Getenv("CHAT_RATE_LIMIT_DISABLED") != "true",
			Limit:   getEnvInt("CHAT_RATE_LIMIT", 30),
			Window:  getEnvDuration("CHAT_RATE_WINDOW", time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		},
	}
}

// HashSalt returns VIDEO_HASH_SALT, the secret mixed into de-identified
// filenames. Callers must treat an empty value as a configuration error.
func HashSalt() string {
	_ = godotenv.Load()
	return os.Getenv("VIDEO_HASH_SALT")
}

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
