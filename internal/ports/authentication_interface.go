package ports

import (
	"context"

	"auth-web-server/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, email, password, userAgent, ipAddress string) (*model.TokensPair, error)
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (*model.TokensPair, error)
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*model.TokensPair, error)
	Logout(ctx context.Context, userID int64, accessToken string) error
}
