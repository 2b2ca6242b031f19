package service

import (
	"context"
	"errors"
	"log"
	"time"

	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"
)

// TokenService — единая точка входа жизненного цикла токенов:
// выпуск пары, ротация refresh токена, logout и проверка запроса.
// Протокол (порядок обращений к хранилищам) принадлежит этому сервису,
// сами пространства ключей — репозиториям.
type TokenService struct {
	jwtService     ports.JWTServiceInterface
	refreshStore   ports.RefreshTokenStore
	blacklist      ports.Blacklist
	userRepository ports.UserRepository
	accessTTL      time.Duration
}

func NewTokenService(
	jwtService ports.JWTServiceInterface,
	refreshStore ports.RefreshTokenStore,
	blacklist ports.Blacklist,
	userRepository ports.UserRepository,
	accessTTL time.Duration,
) *TokenService {
	return &TokenService{
		jwtService:     jwtService,
		refreshStore:   refreshStore,
		blacklist:      blacklist,
		userRepository: userRepository,
		accessTTL:      accessTTL,
	}
}

// IssueTokenPair выпускает access и refresh токены для пользователя.
// ExpiresIn вычисляется из той же конфигурации, которой подписывается
// access токен, а не вычитывается из него обратно.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID int64, role model.Role, userAgent, ipAddress string) (*model.TokensPair, error) {
	accessToken, err := s.jwtService.Issue(userID, role)
	if err != nil {
		return nil, util.LogError("ошибка генерации access токена", err)
	}

	refreshToken, err := s.refreshStore.Issue(ctx, userID, role, userAgent, ipAddress)
	if err != nil {
		return nil, util.LogError("ошибка сохранения refresh токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// RotateRefreshToken атомарно изымает предъявленный refresh токен и
// выпускает новую пару для того же пользователя и роли. При гонке
// двух ротаций одного токена запись достаётся одному вызову,
// проигравший получает model.ErrInvalidRefreshToken. Между изъятием
// и выпуском валидного refresh токена этой линии нет — другие
// невыданные токены пользователя при этом остаются валидными.
func (s *TokenService) RotateRefreshToken(ctx context.Context, presentedToken, userAgent, ipAddress string) (*model.TokensPair, error) {
	record, err := s.refreshStore.Take(ctx, presentedToken)
	if err != nil {
		// ошибка хранилища: fail closed
		log.Printf("ротация refresh токена отклонена из-за ошибки хранилища: %v", err)
		return nil, model.ErrInvalidRefreshToken
	}
	if record == nil {
		return nil, model.ErrInvalidRefreshToken
	}

	return s.IssueTokenPair(ctx, record.UserID, record.Role, userAgent, ipAddress)
}

// Logout заносит access токен в чёрный список и отзывает все refresh
// токены пользователя. Сначала чёрный список: даже если массовый отзыв
// частично не удался, предъявленный access токен уже непригоден.
func (s *TokenService) Logout(ctx context.Context, userID int64, accessToken string) error {
	s.blacklist.Add(ctx, accessToken)

	if err := s.refreshStore.RevokeAll(ctx, userID); err != nil {
		return util.LogError("не удалось отозвать все refresh токены", err)
	}
	return nil
}

// Authenticate проверяет bearer токен запроса: сначала чёрный список,
// затем подпись и сроки, затем существование пользователя.
func (s *TokenService) Authenticate(ctx context.Context, accessToken string) (*model.User, *security.Claims, error) {
	if accessToken == "" {
		return nil, nil, model.ErrTokenMissing
	}

	if s.blacklist.IsBlacklisted(ctx, accessToken) {
		return nil, nil, model.ErrTokenRevoked
	}

	claims, err := s.jwtService.Verify(accessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, model.ErrUserNotFound
		}
		return nil, nil, util.LogError("не удалось найти пользователя по токену", err)
	}

	return user, claims, nil
}
