package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	StripeKey string

	SendGridKey string
	SenderEmail string

	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string

	BaseURL  string
	PageSize int64
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),

		StripeKey: getEnvOrDefault("STRIPE_KEY", ""),

		SendGridKey: getEnvOrDefault("SENDGRID_KEY", ""),
		SenderEmail: getEnvOrDefault("SENDER_EMAIL", "shop@example.com"),

		S3Bucket:     getEnvOrDefault("S3_BUCKET", ""),
		S3Region:     getEnvOrDefault("S3_REGION", "eu-west-3"),
		AWSAccessKey: getEnvOrDefault("AWS_KEY", ""),
		AWSSecretKey: getEnvOrDefault("AWS_KEY_SECRET", ""),

		BaseURL:  getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		PageSize: getInt64Env("PAGE_SIZE", 8),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
