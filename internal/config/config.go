package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Search    SearchConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	Issuer             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SearchLanguage là text search config mà trigger posts_search_vector dùng để build document
// Query phải dùng cùng config, nếu không stem sẽ lệch nhau
const SearchLanguage = "english"

// SearchConfig cấu hình full-text search
// RankWeights theo thứ tự {D, C, B, A} của ts_rank
type SearchConfig struct {
	Language    string
	RankWeights [4]float64
}

// CacheConfig: TTL cũng là thời gian tối đa dữ liệu cache có thể stale
// UserTTL giới hạn độ trễ khi is_active thay đổi, code update user phải xóa key user:<id>
type CacheConfig struct {
	PopularTagsTTL time.Duration
	UserTTL        time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	weights, err := parseWeights(getEnv("SEARCH_RANK_WEIGHTS", "0.1,0.2,0.4,1.0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_RANK_WEIGHTS: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "blog"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:             getEnv("JWT_ISSUER", "blog-api"),
			AccessTokenExpiry:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRY", 15)) * time.Minute,
			RefreshTokenExpiry: time.Duration(getEnvInt("JWT_REFRESH_EXPIRY", 168)) * time.Hour,
		},
		Security: SecurityConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 12),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000")),
		},
		Search: SearchConfig{
			Language:    getEnv("SEARCH_LANGUAGE", SearchLanguage),
			RankWeights: weights,
		},
		Cache: CacheConfig{
			PopularTagsTTL: getEnvDuration("CACHE_POPULAR_TAGS_TTL", 60*time.Second),
			UserTTL:        getEnvDuration("CACHE_USER_TTL", 5*time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("APP_ENV must be one of development, staging, production, test")
	}

	// Production environment phải có JWT secret và DB password
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry <= 0 || c.JWT.RefreshTokenExpiry <= 0 {
		return fmt.Errorf("JWT expiry must be positive")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Search.Language != SearchLanguage {
		return fmt.Errorf("SEARCH_LANGUAGE must be %q to match the search_vector trigger", SearchLanguage)
	}
	if err := validateWeights(c.Search.RankWeights); err != nil {
		return fmt.Errorf("invalid SEARCH_RANK_WEIGHTS: %w", err)
	}

	return nil
}

// IsProduction trả về true khi chạy production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
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

func parseWeights(s string) ([4]float64, error) {
	var weights [4]float64
	parts := splitList(s)
	if len(parts) != 4 {
		return weights, fmt.Errorf("expected 4 comma separated weights, got %d", len(parts))
	}
	for i, p := range parts {
		w, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return weights, err
		}
		if w < 0 || w > 1 {
			return weights, fmt.Errorf("weight %v out of range [0,1]", w)
		}
		weights[i] = w
	}
	return weights, nil
}

// validateWeights: title (A) > content (B) > excerpt (C) >= D
func validateWeights(w [4]float64) error {
	d, c, b, a := w[0], w[1], w[2], w[3]
	if !(d <= c && c < b && b < a) {
		return fmt.Errorf("weights {D,C,B,A} must satisfy D <= C < B < A, got %v", w)
	}
	return nil
}
