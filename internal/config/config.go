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
	Port        string
	MongoURI    string
	DBName      string
	StoreDriver string
	JWTSecret   string
	SessionTTL  time.Duration
	Production  bool
	ClientURL   string

	// TrustedProxies lists the proxy addresses/CIDRs allowed to set X-Forwarded-For.
	// Empty means the client address is always the TCP peer.
	TrustedProxies []string

	UploadDir   string
	S3Bucket    string
	S3PublicURL string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	AuthRateLimit   int
	AuthRateWindow  time.Duration
	MailAPIKey      string
	MailSenderEmail string
	MailSenderName  string
	MailEndpoint    string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Port:        getEnvOrDefault("PORT", "5000"),
		MongoURI:    getEnvOrDefault("MONGO_URI", ""),
		DBName:      getEnvOrDefault("DB_NAME", "stays"),
		StoreDriver: strings.ToLower(getEnvOrDefault("STORE_DRIVER", "mongo")),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", ""),
		SessionTTL:  getDurationEnv("SESSION_TTL_DAYS", 7, 24*time.Hour),
		Production:  strings.EqualFold(getEnvOrDefault("APP_ENV", "development"), "production"),
		ClientURL:   getEnvOrDefault("CLIENT_URL", "http://localhost:5173"),

		TrustedProxies: getListEnv("TRUSTED_PROXIES"),

		UploadDir:   getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		S3Bucket:    getEnvOrDefault("S3_BUCKET", ""),
		S3PublicURL: getEnvOrDefault("S3_PUBLIC_URL", ""),

		RedisAddr:       getEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:         getIntEnv("REDIS_DB", 0),
		AuthRateLimit:   getIntEnv("AUTH_RATE_LIMIT", 20),
		AuthRateWindow:  getDurationEnv("AUTH_RATE_WINDOW_MINUTES", 15, time.Minute),
		MailAPIKey:      getEnvOrDefault("MAIL_API_KEY", ""),
		MailSenderEmail: getEnvOrDefault("MAIL_SENDER_EMAIL", ""),
		MailSenderName:  getEnvOrDefault("MAIL_SENDER_NAME", "Stays"),
		MailEndpoint:    getEnvOrDefault("MAIL_ENDPOINT", "https://api.brevo.com/v3/smtp/email"),
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

func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}
