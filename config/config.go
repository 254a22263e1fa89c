package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	AppHost     string
	BaseURL     string
	Environment string // "development", "staging", "production"

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Security/JWT
	PublicKeyPath   string
	PrivateKeyPath  string
	UserTokenTTL    time.Duration
	RefreshTokenTTL time.Duration

	// Realtime
	HubSendBuffer   int           // per-connection outbound queue size
	HubPingInterval time.Duration // websocket keepalive ping period

	// Frontend
	FrontendBaseURL string
}

func LoadConfig() Config {
	_ = godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "online_library")
	dbURL := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost,
		dbUser,
		dbPassword,
		dbName,
		dbPort,
	)

	userTTL := mustParseDuration(getEnv("USER_TOKEN_TTL", "12h"))
	refreshTTL := mustParseDuration(getEnv("REFRESH_TOKEN_TTL", "168h")) // 7 days

	return Config{
		Port:        getEnv("PORT", "8080"),
		AppHost:     getEnv("APP_HOST", "localhost"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: getEnv("ENVIRONMENT", "production"),

		DatabaseURL: dbURL,
		DBHost:      dbHost,
		DBPort:      dbPort,
		DBUser:      dbUser,
		DBPassword:  dbPassword,
		DBName:      dbName,

		PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public.pem"),
		PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private.pem"),

		UserTokenTTL:    userTTL,
		RefreshTokenTTL: refreshTTL,

		HubSendBuffer:   mustParseInt(getEnv("HUB_SEND_BUFFER", "16")),
		HubPingInterval: mustParseDuration(getEnv("HUB_PING_INTERVAL", "25s")),

		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:5173"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustParseDuration(str string) time.Duration {
	d, err := time.ParseDuration(str)
	if err != nil {
		log.Printf("Invalid duration '%s', defaulting to 1h", str)
		return time.Hour
	}
	return d
}

func mustParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		log.Printf("Invalid integer '%s', defaulting to 0", str)
		return 0
	}
	return i
}
