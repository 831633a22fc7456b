package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string

	SalesDataURL     string
	InventoryDataURL string
	PredictorBaseURL string

	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	PredictionCacheTTLSecs int
	LowStockThreshold      int
	ExpiryHorizonDays      int
	FetchTimeoutSecs       int
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists. Every key has a development default.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		SalesDataURL:     getEnv("SALES_DATA_URL", "data/sales_data.csv"),
		InventoryDataURL: getEnv("INVENTORY_DATA_URL", "data/static_data.csv"),
		PredictorBaseURL: getEnv("PREDICTOR_BASE_URL", "http://localhost:5000"),

		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		PredictionCacheTTLSecs: getEnvInt("PREDICTION_CACHE_TTL_SECONDS", 600),
		LowStockThreshold:      getEnvInt("LOW_STOCK_THRESHOLD", 100),
		ExpiryHorizonDays:      getEnvInt("EXPIRY_HORIZON_DAYS", 30),
		FetchTimeoutSecs:       getEnvInt("FETCH_TIMEOUT_SECONDS", 10),
	}
}

func (c Config) Address() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
