package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultJWTSecret is only acceptable outside production.
const defaultJWTSecret = "your-secret-key"

var ErrDefaultJWTSecret = errors.New("config: JWT_SECRET must be set in production")

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject         string
	FirebaseCredentialsJSON string
	FirebaseCredentialsPath string

	// DatastoreDriver is "firestore" or "memory".
	DatastoreDriver string
	DatastoreRoot   string
	StorageBucket   string

	// SessionDriver is "redis" or "memory".
	SessionDriver string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTExpiry int64

	AuthRateLimit int
	MaxUploadSize int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		FirebaseProject:         getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		DatastoreDriver: getEnv("DATASTORE_DRIVER", "firestore"),
		DatastoreRoot:   getEnv("DATASTORE_ROOT", "markets/almanaqil"),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),

		SessionDriver: getEnv("SESSION_DRIVER", "redis"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       int(getEnvAsInt64("REDIS_DB", 0)),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry: getEnvAsInt64("JWT_EXPIRY", 30*24*60*60), // 30 days

		AuthRateLimit: int(getEnvAsInt64("AUTH_RATE_LIMIT", 5)),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 5*1024*1024),
	}

	if config.IsProduction() && (config.JWTSecret == "" || config.JWTSecret == defaultJWTSecret) {
		return nil, ErrDefaultJWTSecret
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
