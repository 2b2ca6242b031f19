package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey   contextKey = "user"
	ClaimsContextKey contextKey = "claims"
)

type Claims struct {
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService подписывает и проверяет access токены.
// Stateless: результат зависит только от секрета и часов.
type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// Issue выпускает подписанный access токен с идентификатором пользователя,
// ролью и временем жизни из конфигурации.
func (service *JWTService) Issue(userID int64, role model.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(service.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "auth-web-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return accessToken, nil
}

// Verify полностью проверяет подпись и сроки токена.
// Возвращает model.ErrTokenExpired для просроченного токена и
// model.ErrInvalidSignature для всех остальных невалидных токенов.
func (service *JWTService) Verify(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrInvalidSignature
	}
	if !jwtToken.Valid {
		return nil, model.ErrInvalidSignature
	}

	return claims, nil
}

// Decode извлекает claims без проверки подписи. Используется только
// для чтения срока действия при занесении токена в чёрный список,
// для решений о доверии всегда используется Verify.
func (service *JWTService) Decode(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(jwtTokenStr, claims)
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать токен: %w", err)
	}

	return claims, nil
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}

func GetUserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return user, nil
}
