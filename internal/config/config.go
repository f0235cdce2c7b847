package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию для Cyberwise Game Server
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"SERVER_PORT" default:"8080"`
	Env      string `envconfig:"APP_ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CORS: список разрешенных origin через запятую. Пустой список -
	// main подставит дефолтный origin для локальной разработки.
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS"`

	// Настройки PostgreSQL (контент сценариев и архив результатов)
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string

	// Настройки Redis (состояние игровых сессий)
	RedisAddr     string        `envconfig:"REDIS_ADDR" required:"true"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"` // 30 дней неактивности

	// Настройки RabbitMQ (одноразовые события для клиента)
	RabbitMQURL            string `envconfig:"RABBITMQ_URL" required:"true"`
	ClientUpdatesQueueName string `envconfig:"CLIENT_UPDATES_QUEUE_NAME" default:"cyberwise_client_updates"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// readSecret читает секрет из файла в стандартном пути Docker Secrets.
func readSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации cyberwise-server: %w", err)
	}

	// Пароль БД: Docker Secret, для локального запуска fallback на env.
	if password, err := readSecret("db_password"); err == nil {
		cfg.DBPassword = password
	} else if envPassword := os.Getenv("DB_PASSWORD"); envPassword != "" {
		cfg.DBPassword = envPassword
	} else {
		return nil, fmt.Errorf("db password is not provided (secret file or DB_PASSWORD): %w", err)
	}

	log.Printf("Конфигурация Cyberwise Server загружена:")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  DB DSN: postgres://%s:***@%s:%s/%s?sslmode=%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	log.Printf("  Redis Addr: %s", cfg.RedisAddr)
	log.Printf("  Session TTL: %v", cfg.SessionTTL)
	log.Printf("  RabbitMQ URL: %s", cfg.RabbitMQURL)
	log.Printf("  Client Updates Queue: %s", cfg.ClientUpdatesQueueName)

	return &cfg, nil
}
