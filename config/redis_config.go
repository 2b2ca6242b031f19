package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

// NewRedisClient открывает соединение с Redis и проверяет его пингом.
// Повторные попытки при временных сбоях выполняет сам клиент go-redis:
// не более MaxRetries попыток с задержкой между MinRetryBackoff и
// MaxRetryBackoff. После исчерпания попыток операция возвращает ошибку,
// и каждый репозиторий применяет свою политику (fail closed / fail open).
func NewRedisClient(cfg *RedisConfig) (*RedisClient, error) {
	options := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.MaxRetries > 0 {
		options.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoff != "" {
		backoff, err := time.ParseDuration(cfg.MinRetryBackoff)
		if err != nil {
			return nil, fmt.Errorf("некорректный min_retry_backoff: %w", err)
		}
		options.MinRetryBackoff = backoff
	}
	if cfg.MaxRetryBackoff != "" {
		backoff, err := time.ParseDuration(cfg.MaxRetryBackoff)
		if err != nil {
			return nil, fmt.Errorf("некорректный max_retry_backoff: %w", err)
		}
		options.MaxRetryBackoff = backoff
	}
	if cfg.DialTimeout != "" {
		timeout, err := time.ParseDuration(cfg.DialTimeout)
		if err != nil {
			return nil, fmt.Errorf("некорректный dial_timeout: %w", err)
		}
		options.DialTimeout = timeout
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ошибка пинга Redis: %w", err)
	}

	log.Println("Подключение к Redis успешно выполнено")
	return &RedisClient{Client: client}, nil
}

func (r *RedisClient) Close() error {
	if err := r.Client.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия соединения с Redis: %w", err)
	}
	return nil
}
