package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Upload    UploadConfig
	Analytics AnalyticsConfig
	Model     ModelConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type UploadConfig struct {
	MaxRows     int
	MaxFieldLen int
	RateLimit   int
	RateWindow  time.Duration
}

type AnalyticsConfig struct {
	// DataFile is the raw transactions artifact hashed for the
	// integrity endpoint alongside the Merkle root.
	DataFile string
}

type ModelConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	var loaded bool
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			loaded = true
			break
		}
	}

	// If no .env file found, continue with environment variables
	// This allows using environment variables directly (useful for Docker/K8s)
	if !loaded {
		// .env file is optional, continue with environment variables
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxRows, _ := strconv.Atoi(getEnv("UPLOAD_MAX_ROWS", "5000"))
	maxFieldLen, _ := strconv.Atoi(getEnv("UPLOAD_MAX_FIELD_LEN", "255"))
	rateLimit, _ := strconv.Atoi(getEnv("UPLOAD_RATE_LIMIT", "30"))
	rateWindow, _ := strconv.Atoi(getEnv("UPLOAD_RATE_WINDOW_SECONDS", "60"))
	modelTimeout, _ := strconv.Atoi(getEnv("MODEL_TIMEOUT_SECONDS", "30"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5433"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "crm_insight"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Upload: UploadConfig{
			MaxRows:     maxRows,
			MaxFieldLen: maxFieldLen,
			RateLimit:   rateLimit,
			RateWindow:  time.Duration(rateWindow) * time.Second,
		},
		Analytics: AnalyticsConfig{
			DataFile: getEnv("ANALYTICS_DATA_FILE", "data/transactions.csv"),
		},
		Model: ModelConfig{
			BaseURL: getEnv("MODEL_BASE_URL", "http://localhost:5000"),
			Timeout: time.Duration(modelTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
