package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	// Media storage
	StorageDriver           string // local, firebase or s3
	MediaRoot               string
	MediaURL                string
	FirebaseCredentialsPath string
	FirebaseBucket          string
	S3Bucket                string
	AWSRegion               string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		DatabaseURL:             getEnv("DATABASE_URL", os.Getenv("POSTGRES_CONN_STR")),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:                getDuration("TOKEN_TTL", 72*time.Hour),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		CORSOrigins:             splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		StorageDriver:           getEnv("STORAGE_DRIVER", "local"),
		MediaRoot:               getEnv("MEDIA_ROOT", "./media"),
		MediaURL:                getEnv("MEDIA_URL", "/media"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		FirebaseBucket:          getEnv("FIREBASE_STORAGE_BUCKET", ""),
		S3Bucket:                getEnv("S3_BUCKET", ""),
		AWSRegion:               getEnv("AWS_REGION", "us-east-2"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, falling back to %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
