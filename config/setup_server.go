package config

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"auth-web-server/internal/util"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	TTL            TTL            `yaml:"TTL"`
}

// LoadConfig читает конфигурацию из YAML и валидирует её один раз:
// строки TTL токенов разбираются здесь, дальше по коду используются
// только готовые time.Duration.
func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("jwt.secret_key не задан")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		log.Println("jwt.secret_key короче 32 символов, рекомендуется более длинный секрет")
	}

	cfg.JWT.AccessTokenDuration, err = util.ParseDuration(cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("некорректный jwt.access_token_ttl: %w", err)
	}
	cfg.JWT.RefreshTokenDuration, err = util.ParseDuration(cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("некорректный jwt.refresh_token_ttl: %w", err)
	}

	return &cfg, nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
