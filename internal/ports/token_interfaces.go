package ports

import (
	"context"

	"auth-web-server/internal/model"
	"auth-web-server/internal/security"
)

type JWTServiceInterface interface {
	Issue(userID int64, role model.Role) (string, error)
	Verify(tokenStr string) (*security.Claims, error)
	Decode(tokenStr string) (*security.Claims, error)
}

// RefreshTokenStore : Redis слой refresh токенов
type RefreshTokenStore interface {
	Issue(ctx context.Context, userID int64, role model.Role, userAgent, ipAddress string) (string, error)
	Verify(ctx context.Context, token string) (*model.RefreshTokenRecord, error)
	Take(ctx context.Context, token string) (*model.RefreshTokenRecord, error)
	Revoke(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userID int64) error
}

// Blacklist : Redis слой отозванных access токенов
type Blacklist interface {
	Add(ctx context.Context, accessToken string)
	IsBlacklisted(ctx context.Context, accessToken string) bool
}

// TokenLifecycle : единая точка входа для жизненного цикла токенов
type TokenLifecycle interface {
	IssueTokenPair(ctx context.Context, userID int64, role model.Role, userAgent, ipAddress string) (*model.TokensPair, error)
	RotateRefreshToken(ctx context.Context, presentedToken, userAgent, ipAddress string) (*model.TokensPair, error)
	Logout(ctx context.Context, userID int64, accessToken string) error
	Authenticate(ctx context.Context, accessToken string) (*model.User, *security.Claims, error)
}
