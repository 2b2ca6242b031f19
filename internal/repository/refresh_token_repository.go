package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/util"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenRepository хранит refresh токены в Redis.
// Запись лежит по ключу самого токена, дополнительно ведётся
// SET-индекс токенов пользователя для массового отзыва.
// Индекс производный: сам по себе он не делает токен валидным.
type RefreshTokenRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewRefreshTokenRepository(rdb *config.RedisClient, ttl time.Duration) *RefreshTokenRepository {
	return &RefreshTokenRepository{rdb, ttl}
}

// Issue генерирует новый opaque токен и сохраняет его запись.
// TTL ключа равен оставшимся секундам до абсолютного expires_at,
// TTL индекса пользователя обновляется до того же окна.
func (r *RefreshTokenRepository) Issue(ctx context.Context, userID int64, role model.Role, userAgent, ipAddress string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", util.LogError("ошибка генерации refresh токена", err)
	}
	token := base64.RawURLEncoding.EncodeToString(tokenBytes)

	now := time.Now().UTC()
	record := &model.RefreshTokenRecord{
		UserID:    userID,
		Role:      role,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
		UserAgent: userAgent,
		IpAddress: ipAddress,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", util.LogError("ошибка сериализации refresh токена", err)
	}

	pipe := r.client.Client.TxPipeline()
	pipe.Set(ctx, r.tokenKey(token), data, r.ttl)
	pipe.SAdd(ctx, r.userKey(userID), token)
	pipe.Expire(ctx, r.userKey(userID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", util.LogError("ошибка сохранения refresh токена в Redis", err)
	}

	return token, nil
}

// Verify возвращает запись токена или nil, если токен не существует
// либо уже истёк. Запись с истёкшим embedded expires_at (рассинхрон
// часов и TTL хранилища) удаляется немедленно. Любая ошибка связи
// с Redis логируется и трактуется вызывающим как невалидный токен.
func (r *RefreshTokenRepository) Verify(ctx context.Context, token string) (*model.RefreshTokenRecord, error) {
	val, err := r.client.Client.Get(ctx, r.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // токена нет: не выдавался либо истёк
	} else if err != nil {
		return nil, util.LogError("ошибка получения refresh токена из Redis", err)
	}

	record := &model.RefreshTokenRecord{}
	if err := json.Unmarshal([]byte(val), record); err != nil {
		return nil, util.LogError("ошибка десериализации refresh токена", err)
	}

	if time.Now().UTC().After(record.ExpiresAt) {
		if err := r.deleteToken(ctx, token, record.UserID); err != nil {
			log.Printf("не удалось удалить просроченный refresh токен: %v", err)
		}
		return nil, nil
	}

	return record, nil
}

// Take атомарно забирает запись токена: GETDEL гарантирует, что при
// конкурентной ротации одного и того же токена запись достанется
// ровно одному вызову, второй получит nil.
func (r *RefreshTokenRepository) Take(ctx context.Context, token string) (*model.RefreshTokenRecord, error) {
	val, err := r.client.Client.GetDel(ctx, r.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("ошибка изъятия refresh токена из Redis", err)
	}

	record := &model.RefreshTokenRecord{}
	if err := json.Unmarshal([]byte(val), record); err != nil {
		return nil, util.LogError("ошибка десериализации refresh токена", err)
	}

	if err := r.client.Client.SRem(ctx, r.userKey(record.UserID), token).Err(); err != nil {
		// запись уже удалена, индекс лишь производный
		log.Printf("не удалось убрать refresh токен из индекса пользователя %d: %v", record.UserID, err)
	}

	if time.Now().UTC().After(record.ExpiresAt) {
		return nil, nil
	}

	return record, nil
}

// Revoke отзывает токен. Идемпотентна: повторный вызов и отзыв
// несуществующего токена не являются ошибкой.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	if _, err := r.Take(ctx, token); err != nil {
		return fmt.Errorf("не удалось отозвать refresh токен: %w", err)
	}
	return nil
}

// RevokeAll отзывает все refresh токены пользователя. Отзыв каждого
// токена выполняется по принципу best-effort: ошибка по одному токену
// логируется, остальные всё равно отзываются.
func (r *RefreshTokenRepository) RevokeAll(ctx context.Context, userID int64) error {
	tokens, err := r.client.Client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return util.LogError("не удалось получить список refresh токенов пользователя", err)
	}

	var failed int
	for _, token := range tokens {
		if err := r.client.Client.Del(ctx, r.tokenKey(token)).Err(); err != nil {
			failed++
			log.Printf("не удалось удалить refresh токен пользователя %d: %v", userID, err)
		}
	}

	if err := r.client.Client.Del(ctx, r.userKey(userID)).Err(); err != nil {
		log.Printf("не удалось удалить индекс refresh токенов пользователя %d: %v", userID, err)
	}

	if failed > 0 {
		return fmt.Errorf("не отозвано %d из %d refresh токенов", failed, len(tokens))
	}
	return nil
}

func (r *RefreshTokenRepository) deleteToken(ctx context.Context, token string, userID int64) error {
	pipe := r.client.Client.TxPipeline()
	pipe.Del(ctx, r.tokenKey(token))
	pipe.SRem(ctx, r.userKey(userID), token)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RefreshTokenRepository) tokenKey(token string) string {
	return fmt.Sprintf("refresh_token:%s", token)
}

func (r *RefreshTokenRepository) userKey(userID int64) string {
	return fmt.Sprintf("user_refresh_tokens:%d", userID)
}
