package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string `validate:"oneof=development staging production test"`

	// Logging
	LogLevel  string
	LogFormat string `validate:"oneof=json console pretty"`

	// Output
	DataDir string `validate:"required"`
	TopN    int    `validate:"gte=1"`

	// External sources
	HTTPTimeout time.Duration `validate:"gt=0"`
	Yahoo       YahooConfig
	B3          B3Config

	// Optional result mirrors
	Database DatabaseConfig
	Redis    RedisConfig

	// API
	Port string `validate:"required,numeric"`

	// Scheduler
	ScheduleCron string   `validate:"required"`
	Samples      []string `validate:"min=1,dive,required"`
}

// YahooConfig holds the price history provider configuration
type YahooConfig struct {
	BaseURL        string `validate:"required,url"`
	ExchangeSuffix string
}

// B3Config holds the universe CSV endpoints
type B3Config struct {
	ListedURL        string `validate:"required,url"`
	IndexURLTemplate string `validate:"required,contains=%s"`
}

// DatabaseConfig holds PostgreSQL configuration for the run archive.
// An empty URL disables the archive.
type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

const (
	defaultListedURL = "https://raw.githubusercontent.com/rianlucascs/b3-scraping-project/master/processed_data/3.%20Empresas%20listadas/todas_empresas_listadas.csv"
	defaultIndexURL  = "https://raw.githubusercontent.com/rianlucascs/b3-scraping-project/master/processed_data/1.%20%C3%8Dndices%20de%20Segmentos%20e%20Setoriais/Setores/%s/Tabela_%s.csv"
)

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		DataDir: getEnv("DATA_DIR", "data"),
		TopN:    getEnvAsInt("TOP_N", 10),

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "30s"),
		Yahoo: YahooConfig{
			BaseURL:        getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			ExchangeSuffix: getEnv("EXCHANGE_SUFFIX", ".SA"),
		},
		B3: B3Config{
			ListedURL:        getEnv("B3_LISTED_URL", defaultListedURL),
			IndexURLTemplate: getEnv("B3_INDEX_URL_TEMPLATE", defaultIndexURL),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 4),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 0),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Port: getEnv("PORT", "8089"),

		ScheduleCron: getEnv("SCHEDULE_CRON", "0 0 19 * * 1-5"),
		Samples:      getEnvAsList("SAMPLES", "index:IDIV"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the struct tags on Config
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ArchiveEnabled reports whether runs are archived to PostgreSQL
func (c *Config) ArchiveEnabled() bool {
	return c.Database.URL != ""
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
