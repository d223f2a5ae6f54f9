package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	ImageAPI  ImageAPIConfig
	Storage   StorageConfig
	Email     EmailConfig
	Demo      DemoConfig
}

type ServerConfig struct {
	Port           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	Issuer             string
}

type RateLimitConfig struct {
	GeneralMax       int
	GeneralWindow    time.Duration
	AuthMax          int
	AuthWindow       time.Duration
	GenerationMax    int
	GenerationWindow time.Duration
}

type ImageAPIConfig struct {
	APIKey     string
	Model      string
	RetryDelay time.Duration
	MaxRetries int
}

type StorageConfig struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // for S3-compatible services (MinIO, R2)
	BaseURL        string // public URL prefix; derived from bucket/region when empty
	ForcePathStyle bool
}

type EmailConfig struct {
	Enabled     bool
	ResendKey   string
	FromAddress string
	FeedbackTo  string
}

type DemoConfig struct {
	Email string // identity whose sample data is reset on logout
}

func Load() (*Config, error) {
	// .env is optional in production
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: getSliceEnv("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "memorypalace"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", ""),
			AccessTokenExpiry:  getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),
			RefreshTokenExpiry: getDurationEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			Issuer:             getEnv("JWT_ISSUER", "memory-palace"),
		},
		RateLimit: RateLimitConfig{
			GeneralMax:       getIntEnv("RATE_LIMIT_GENERAL_MAX", 200),
			GeneralWindow:    getDurationEnv("RATE_LIMIT_GENERAL_WINDOW", 15*time.Minute),
			AuthMax:          getIntEnv("RATE_LIMIT_AUTH_MAX", 15),
			AuthWindow:       getDurationEnv("RATE_LIMIT_AUTH_WINDOW", 15*time.Minute),
			GenerationMax:    getIntEnv("RATE_LIMIT_GENERATION_MAX", 100),
			GenerationWindow: getDurationEnv("RATE_LIMIT_GENERATION_WINDOW", time.Hour),
		},
		ImageAPI: ImageAPIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			Model:      getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
			RetryDelay: getDurationEnv("IMAGE_API_RETRY_DELAY", 30*time.Second),
			MaxRetries: getIntEnv("IMAGE_API_MAX_RETRIES", 3),
		},
		Storage: StorageConfig{
			Bucket:         getEnv("S3_BUCKET", ""),
			Region:         getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:    getEnv("S3_ACCESS_KEY_ID", ""),
			SecretKey:      getEnv("S3_SECRET_KEY", ""),
			Endpoint:       getEnv("S3_ENDPOINT", ""),
			BaseURL:        getEnv("S3_BASE_URL", ""),
			ForcePathStyle: getBoolEnv("S3_FORCE_PATH_STYLE", false),
		},
		Email: EmailConfig{
			Enabled:     getBoolEnv("EMAIL_ENABLED", false),
			ResendKey:   getEnv("RESEND_API_KEY", ""),
			FromAddress: getEnv("EMAIL_FROM", "noreply@memorypalace.app"),
			FeedbackTo:  getEnv("FEEDBACK_EMAIL", ""),
		},
		Demo: DemoConfig{
			Email: getEnv("DEMO_USER_EMAIL", "demo@memorypalace.app"),
		},
	}

	// Misconfiguration is fatal at startup, never per request.
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ImageAPI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
