// Package config загружает конфигурацию сервиса из переменных окружения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервиса
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Нечёткое сопоставление единиц
	MatchMinScore float64 `json:"match_min_score"`

	// Распознавание
	OCRLanguages []string `json:"ocr_languages"`

	// Загрузка изображений
	FetchTimeout    time.Duration `json:"fetch_timeout"`
	FetchRatePerSec float64       `json:"fetch_rate_per_sec"`
	FetchUserAgent  string        `json:"fetch_user_agent"`

	// Пакетная обработка
	Workers       int    `json:"workers"`
	BatchSize     int    `json:"batch_size"`
	CachePath     string `json:"cache_path"`
	InputEncoding string `json:"input_encoding"`
}

// LoadConfig загружает конфигурацию из переменных окружения со значениями
// по умолчанию
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:            getEnv("PORT", "8080"),
		MatchMinScore:   getEnvFloat("MATCH_MIN_SCORE", 95),
		OCRLanguages:    []string{getEnv("OCR_LANGUAGE", "eng")},
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchRatePerSec: getEnvFloat("FETCH_RATE_PER_SEC", 10),
		FetchUserAgent:  getEnv("FETCH_USER_AGENT", ""),
		Workers:         getEnvInt("WORKERS", 4),
		BatchSize:       getEnvInt("BATCH_SIZE", 5),
		CachePath:       getEnv("CACHE_PATH", "ocr_cache.db"),
		InputEncoding:   getEnv("INPUT_ENCODING", "utf-8"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.MatchMinScore <= 0 || c.MatchMinScore > 100 {
		return fmt.Errorf("match min score must be in (0, 100], got %g", c.MatchMinScore)
	}
	if c.FetchRatePerSec <= 0 {
		return fmt.Errorf("fetch rate must be positive, got %g", c.FetchRatePerSec)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
