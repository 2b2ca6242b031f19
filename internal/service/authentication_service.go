package service

import (
	"context"
	"errors"
	"fmt"

	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	tokenService   ports.TokenLifecycle
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	tokenService ports.TokenLifecycle,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		tokenService:   tokenService,
	}
}

// Register создает нового пользователя и сразу выдает ему пару токенов.
// Возвращает model.ErrEmailTaken, если email уже используется.
func (s *AuthenticationService) Register(ctx context.Context, email, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	if email == "" {
		return nil, fmt.Errorf("email обязателен")
	}
	if err := security.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.userRepository.FindByEmail(ctx, email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, util.LogError("ошибка проверки email", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, util.LogError("не удалось создать хэш пароля", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, model.ErrEmailTaken
		}
		return nil, util.LogError("ошибка создания пользователя", err)
	}

	return s.tokenService.IssueTokenPair(ctx, created.ID, created.Role, userAgent, ipAddress)
}

// Login проверяет учетные данные и выдает пару токенов.
// Для неизвестного email и неверного пароля ответ одинаков —
// model.ErrInvalidCredentials, токены при ошибке не выпускаются.
func (s *AuthenticationService) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, util.LogError("ошибка поиска пользователя", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	return s.tokenService.IssueTokenPair(ctx, user.ID, user.Role, userAgent, ipAddress)
}

// Refresh обменивает действующий refresh токен на новую пару.
// Предъявленный токен одноразовый: после успешного обмена повторное
// предъявление дает model.ErrInvalidRefreshToken.
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*model.TokensPair, error) {
	return s.tokenService.RotateRefreshToken(ctx, refreshToken, userAgent, ipAddress)
}

// Logout завершает все сессии пользователя: access токен попадает
// в чёрный список, refresh токены отзываются.
func (s *AuthenticationService) Logout(ctx context.Context, userID int64, accessToken string) error {
	return s.tokenService.Logout(ctx, userID, accessToken)
}
