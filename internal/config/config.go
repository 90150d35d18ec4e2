package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	EnableWebsocket bool

	APIKeyRequired bool
	APIKeys        []string

	DBPath string

	JWTSecret     string
	EncryptionKey string

	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		EnableWebsocket: getBoolEnv("ENABLE_WEBSOCKET", true),

		APIKeyRequired: getBoolEnv("API_KEY_REQUIRED", false),
		APIKeys:        getStringSliceEnv("API_KEYS", []string{}),

		DBPath: getEnv("DB_PATH", "checkin.db"),

		JWTSecret:     getEnv("JWT_SECRET", "default-checkin-jwt-secret-trocar-em-producao"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", "12345678901234567890123456789012"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	return config
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return boolValue
}

func getStringSliceEnv(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	return strings.Split(value, ",")
}
