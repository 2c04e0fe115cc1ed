package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Freight config reads are served from memory for this long
	CacheFreightConfigTTL time.Duration
	// Rate limiting (per client IP)
	RateLimitRPS   float64
	RateLimitBurst int
	// R2 Storage: the public rate card is published here when configured
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
	RateCardKey       string
	// Business Rules
	MaxOrderTotal float64
}

func LoadConfig() *Config {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// .env is optional; containers rely on real env vars
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		CacheFreightConfigTTL: getDurationEnv("CACHE_FREIGHT_CONFIG_TTL", 5*time.Minute),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),
		RateCardKey:       getEnv("RATE_CARD_KEY", "freight/zones-info.json"),

		MaxOrderTotal: getFloatEnv("MAX_ORDER_TOTAL", 1_000_000),
	}

	cfg.Validate()
	return cfg
}

const defaultJWTSecret = "default_secret_CHANGE_ME"

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if !c.R2Enabled() {
		log.Println("R2 storage not configured, rate card publishing disabled")
	}
}

// R2Enabled reports whether every R2 setting needed for publishing is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
