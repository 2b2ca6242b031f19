package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"auth-web-server/config"
	"auth-web-server/internal/security"
)

const blacklistSentinel = "revoked"

// BlacklistRepository помечает access токены отозванными до их
// естественного истечения. TTL маркера равен оставшемуся времени
// жизни токена, поэтому явная очистка не нужна.
type BlacklistRepository struct {
	client     *config.RedisClient
	decoder    tokenDecoder
	defaultTTL time.Duration
	strict     bool
}

// tokenDecoder читает claims без проверки подписи — здесь нужен
// только срок действия, решение о доверии не принимается.
type tokenDecoder interface {
	Decode(tokenStr string) (*security.Claims, error)
}

func NewBlacklistRepository(rdb *config.RedisClient, decoder tokenDecoder, defaultTTL time.Duration, strict bool) *BlacklistRepository {
	return &BlacklistRepository{
		client:     rdb,
		decoder:    decoder,
		defaultTTL: defaultTTL,
		strict:     strict,
	}
}

// Add заносит access токен в чёрный список. Никогда не возвращает
// ошибку: сбой Redis логируется, но не блокирует завершение logout.
// Если claims токена нечитаемы или срок уже истёк, маркер живёт
// дефолтное время жизни access токена как консервативная верхняя граница.
func (r *BlacklistRepository) Add(ctx context.Context, accessToken string) {
	ttl := r.defaultTTL

	claims, err := r.decoder.Decode(accessToken)
	if err == nil && claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := r.client.Client.Set(ctx, r.key(accessToken), blacklistSentinel, ttl).Err(); err != nil {
		log.Printf("не удалось добавить токен в чёрный список: %v", err)
	}
}

// IsBlacklisted проверяет наличие токена в чёрном списке.
// При ошибке Redis поведение зависит от политики: по умолчанию
// проверка пропускает запрос (fail open), чтобы временный сбой
// хранилища не отказал всем аутентифицированным запросам;
// в строгом режиме запрос отклоняется.
func (r *BlacklistRepository) IsBlacklisted(ctx context.Context, accessToken string) bool {
	count, err := r.client.Client.Exists(ctx, r.key(accessToken)).Result()
	if err != nil {
		log.Printf("ошибка проверки чёрного списка: %v", err)
		return r.strict
	}
	return count > 0
}

func (r *BlacklistRepository) key(accessToken string) string {
	return fmt.Sprintf("blacklist:%s", accessToken)
}
