package service_test

import (
	"context"
	"testing"

	"auth-web-server/internal/model"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error {
	args := m.Called(ctx, id, newPasswordHash)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTokenLifecycle struct {
	mock.Mock
}

func (m *MockTokenLifecycle) IssueTokenPair(ctx context.Context, userID int64, role model.Role, userAgent, ipAddress string) (*model.TokensPair, error) {
	args := m.Called(ctx, userID, role, userAgent, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokensPair), args.Error(1)
}

func (m *MockTokenLifecycle) RotateRefreshToken(ctx context.Context, presentedToken, userAgent, ipAddress string) (*model.TokensPair, error) {
	args := m.Called(ctx, presentedToken, userAgent, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokensPair), args.Error(1)
}

func (m *MockTokenLifecycle) Logout(ctx context.Context, userID int64, accessToken string) error {
	args := m.Called(ctx, userID, accessToken)
	return args.Error(0)
}

func (m *MockTokenLifecycle) Authenticate(ctx context.Context, accessToken string) (*model.User, *security.Claims, error) {
	args := m.Called(ctx, accessToken)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	var claims *security.Claims
	if args.Get(1) != nil {
		claims = args.Get(1).(*security.Claims)
	}
	return user, claims, args.Error(2)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, model.ErrUserNotFound)
	userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(&model.User{ID: 1, Email: "new@example.com", Role: model.RoleUser}, nil)
	tokenService.On("IssueTokenPair", mock.Anything, int64(1), model.RoleUser, "agent", "127.0.0.1").
		Return(&model.TokensPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)

	pair, err := authService.Register(context.Background(), "new@example.com", "Str0ng!pass", "agent", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	userRepo.AssertExpectations(t)
	tokenService.AssertExpectations(t)
}

// Пароль хэшируется перед сохранением, открытый текст в БД не попадает
func TestRegister_PasswordHashed(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, model.ErrUserNotFound)
	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
		return user.PasswordHash != "Str0ng!pass" && security.CheckPassword("Str0ng!pass", user.PasswordHash)
	})).Return(&model.User{ID: 1, Role: model.RoleUser}, nil)
	tokenService.On("IssueTokenPair", mock.Anything, int64(1), model.RoleUser, "", "").
		Return(&model.TokensPair{}, nil)

	_, err := authService.Register(context.Background(), "new@example.com", "Str0ng!pass", "", "")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)

	pair, err := authService.Register(context.Background(), "taken@example.com", "Str0ng!pass", "", "")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, model.ErrEmailTaken)
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	tokenService.AssertNotCalled(t, "IssueTokenPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_WeakPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	pair, err := authService.Register(context.Background(), "new@example.com", "short", "", "")

	assert.Nil(t, pair)
	assert.Error(t, err)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	hash, err := security.HashPassword("Str0ng!pass")
	require.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{ID: 42, Email: "user@example.com", PasswordHash: hash, Role: model.RoleAdmin}, nil)
	tokenService.On("IssueTokenPair", mock.Anything, int64(42), model.RoleAdmin, "agent", "127.0.0.1").
		Return(&model.TokensPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)

	pair, err := authService.Login(context.Background(), "user@example.com", "Str0ng!pass", "agent", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "refresh", pair.RefreshToken)
	tokenService.AssertExpectations(t)
}

// Неверный пароль: единый ответ, токены не выпускаются
func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	hash, err := security.HashPassword("Str0ng!pass")
	require.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{ID: 42, PasswordHash: hash}, nil)

	pair, err := authService.Login(context.Background(), "user@example.com", "WrongPass1!", "", "")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	tokenService.AssertNotCalled(t, "IssueTokenPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Неизвестный email неотличим от неверного пароля
func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenService := new(MockTokenLifecycle)
	authService := service.NewAuthenticationService(userRepo, tokenService)

	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, model.ErrUserNotFound)

	pair, err := authService.Login(context.Background(), "ghost@example.com", "Str0ng!pass", "", "")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	tokenService.AssertNotCalled(t, "IssueTokenPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Полный жизненный цикл сессии поверх настоящего стека токенов:
// регистрация, вход, ротация, повторное предъявление, выход
func TestAuthenticationFlow_EndToEnd(t *testing.T) {
	f := newTokenServiceFixture(t)
	authService := service.NewAuthenticationService(f.userRepo, f.tokenService)
	ctx := context.Background()

	hash, err := security.HashPassword("Str0ng!pass")
	require.NoError(t, err)
	user := &model.User{ID: 1, Email: "user@example.com", PasswordHash: hash, Role: model.RoleUser}

	f.userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(nil, model.ErrUserNotFound).Once()
	f.userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(user, nil).Once()
	f.userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(user, nil)
	f.userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(user, nil)

	registered, err := authService.Register(ctx, "user@example.com", "Str0ng!pass", "agent", "127.0.0.1")
	require.NoError(t, err)

	loggedIn, err := authService.Login(ctx, "user@example.com", "Str0ng!pass", "agent", "127.0.0.1")
	require.NoError(t, err)

	rotated, err := authService.Refresh(ctx, loggedIn.RefreshToken, "agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, loggedIn.RefreshToken, rotated.RefreshToken)

	// предъявленный при ротации токен уже изъят
	_, err = authService.Refresh(ctx, loggedIn.RefreshToken, "agent", "127.0.0.1")
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)

	// до выхода access токен принимается
	_, _, err = f.tokenService.Authenticate(ctx, rotated.AccessToken)
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, 1, rotated.AccessToken))

	_, _, err = f.tokenService.Authenticate(ctx, rotated.AccessToken)
	assert.ErrorIs(t, err, model.ErrTokenRevoked)

	// отозваны все refresh токены пользователя, включая токен регистрации
	for _, refreshToken := range []string{registered.RefreshToken, rotated.RefreshToken} {
		_, err = authService.Refresh(ctx, refreshToken, "agent", "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	}
}
