package config

import (
	"os"
	"strconv"
	"time"

	"github.com/MRDEADPOOL12/To-do/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	CORSOrigin  string

	JWTSecret string
	JWTTTL    time.Duration

	// Redis rate limiter (optional; limiter is fail-open without it)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit  int
	AuthRateWindow time.Duration
	APIRateLimit   int
	APIRateWindow  time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env is honored when
// present). Missing DATABASE_URL or JWT_SECRET is fatal.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3001"
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}

	jwtTTL := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			jwtTTL = time.Duration(n) * time.Hour
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateLimit = n
		}
	}

	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		CORSOrigin:     corsOrigin,
		JWTSecret:      jwtSecret,
		JWTTTL:         jwtTTL,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		AuthRateLimit:  authRateLimit,
		AuthRateWindow: authRateWindow,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}
