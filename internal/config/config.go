package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию клиентских приложений (киоск и админка)
type Config struct {
	AppEnv Env

	// ServerBaseURL - базовый адрес сервера напитков
	ServerBaseURL string

	// Branch - явный выбор филиала; пустое значение означает,
	// что филиал назначит сервер через /connect
	Branch string

	// HTTPTimeout - таймаут одного HTTP запроса
	HTTPTimeout time.Duration

	// ShutdownTimeout - таймаут на завершение сессии по сигналу
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения
// Сначала подхватывает .env (если файл есть), затем читает APP_ENV
// и устанавливает дефолты в зависимости от окружения
func Load() (Config, error) {
	// .env необязателен - его отсутствие не ошибка
	_ = godotenv.Load()

	cfg := Config{}

	appEnvStr := getString("APP_ENV", string(EnvLocal))
	appEnv := Env(appEnvStr)
	if appEnv != EnvLocal && appEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", appEnvStr)
	}
	cfg.AppEnv = appEnv

	// SERVER_BASE_URL
	if cfg.AppEnv == EnvLocal {
		cfg.ServerBaseURL = getString("SERVER_BASE_URL", "http://127.0.0.1:8080")
	} else {
		cfg.ServerBaseURL = getString("SERVER_BASE_URL", "http://hq-server:8080")
	}

	// BRANCH (необязательный)
	cfg.Branch = getString("BRANCH", "")

	// HTTP_TIMEOUT
	httpTimeout, err := getDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	cfg.HTTPTimeout = httpTimeout

	// SHUTDOWN_TIMEOUT
	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", "5s")
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdownTimeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.ServerBaseURL == "" {
		return fmt.Errorf("SERVER_BASE_URL is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Log выводит конфигурацию в лог
func (c Config) Log() {
	log.Printf("Config loaded:")
	log.Printf("  APP_ENV: %s", c.AppEnv)
	log.Printf("  SERVER_BASE_URL: %s", c.ServerBaseURL)
	if c.Branch != "" {
		log.Printf("  BRANCH: %s", c.Branch)
	} else {
		log.Printf("  BRANCH: (assigned by server)")
	}
	log.Printf("  HTTP_TIMEOUT: %s", c.HTTPTimeout)
	log.Printf("  SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
}

// getString читает переменную окружения или возвращает дефолт
func getString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration читает duration из переменной окружения или возвращает дефолт
func getDuration(key, defaultValue string) (time.Duration, error) {
	value := getString(key, defaultValue)
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
