package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	Pagination PaginationConfig
	Mail       MailConfig
	Cloudinary CloudinaryConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Timeout     time.Duration
	Port        string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
	// ResetCodeTTL bounds the lifetime of a password reset code. The default
	// is 42300ms, carried over from the previous deployment; it looks like it
	// was meant to be 42300 seconds, so keep it configurable.
	ResetCodeTTL time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	Database     int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RateLimitConfig struct {
	Request  int
	Duration int // window length in seconds
}

type PaginationConfig struct {
	Limit  int
	Offset int
}

type MailConfig struct {
	Enabled      bool
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	// BaseURL is the public address used to build activation and reset links.
	BaseURL string
}

type CloudinaryConfig struct {
	Enabled bool
	URL     string
}

func LoadConfig() (*Config, error) {
	// Load .env file, missing file is fine
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "examhub-api"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			Timeout:     getEnvAsDuration("APP_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "examhub_db"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			Database:     getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		JWT: JWTConfig{
			Secret:         getEnv("SECRET_KEY", "default_secret_key_change_in_production"),
			ExpirationTime: getEnvAsDuration("JWT_EXPIRATION", 12*time.Hour),
			ResetCodeTTL:   getEnvAsDuration("RESET_CODE_TTL", 42300*time.Millisecond),
		},
		RateLimit: RateLimitConfig{
			Request:  getEnvAsInt("RATE_LIMIT_MAX_REQUEST", 500),
			Duration: getEnvAsInt("RATE_LIMIT_DURATION", 900),
		},
		Pagination: PaginationConfig{
			Limit:  getEnvAsInt("PAGINATION_LIMIT", 10),
			Offset: getEnvAsInt("PAGINATION_OFFSET", 0),
		},
		Mail: MailConfig{
			Enabled:      getEnvAsBool("MAIL_ENABLED", false),
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("MAIL_FROM", "no-reply@examhub.local"),
			BaseURL:      getEnv("MAIL_BASE_URL", "http://localhost:3000"),
		},
		Cloudinary: CloudinaryConfig{
			Enabled: getEnvAsBool("CLOUDINARY_ENABLED", false),
			URL:     getEnv("CLOUDINARY_URL", ""),
		},
	}

	return config, nil
}

func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
