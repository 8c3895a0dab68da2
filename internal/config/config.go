package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultKafkaTopic     = "proctor-events"
	defaultDigestInterval = 24 * time.Hour
	defaultKafkaBatch     = 10 * time.Millisecond
)

type Config struct {
	TelegramToken  string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string        `mapstructure:"DB_DSN"`
	Environment    string        `mapstructure:"ENV"`
	AdminChatID    string        `mapstructure:"ADMIN_CHAT_ID"`
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string        `mapstructure:"GEMINI_MODEL"`
	KafkaBrokers   []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic     string        `mapstructure:"KAFKA_TOPIC"`
	KafkaBatch     time.Duration `mapstructure:"KAFKA_BATCH_TIMEOUT"`
	TraceOutput    string        `mapstructure:"TRACE_OUTPUT"`
	DigestInterval time.Duration `mapstructure:"DIGEST_INTERVAL"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения и проверяет её
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   os.Getenv("ENV"),
		AdminChatID:   os.Getenv("ADMIN_CHAT_ID"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		TraceOutput:   os.Getenv("TRACE_OUTPUT"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = defaultKafkaTopic
	}

	var err error
	if cfg.DigestInterval, err = durationEnv("DIGEST_INTERVAL", defaultDigestInterval); err != nil {
		return nil, err
	}
	if cfg.KafkaBatch, err = durationEnv("KAFKA_BATCH_TIMEOUT", defaultKafkaBatch); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// AdvisorEnabled включён ли Gemini-советчик
func (c *Config) AdvisorEnabled() bool {
	return c.GeminiAPIKey != ""
}

// EventsEnabled включена ли публикация событий в Kafka
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// durationEnv читает положительную длительность или возвращает значение по умолчанию
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
