package service_test

import (
	"context"
	"testing"
	"time"

	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/repository"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
)

type tokenServiceFixture struct {
	tokenService *service.TokenService
	jwtService   *security.JWTService
	refreshRepo  *repository.RefreshTokenRepository
	blacklist    *repository.BlacklistRepository
	userRepo     *MockUserRepository
	mr           *miniredis.Miniredis
}

// Оркестратор тестируется поверх настоящих Redis-репозиториев
// (miniredis) и настоящего кодека, мокается только SQL слой
func newTokenServiceFixture(t *testing.T) *tokenServiceFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := &config.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })

	jwtService := security.NewJWTService(&config.JWTConfig{
		SecretKey:           "test-secret-key-0123456789abcdef",
		AccessTokenDuration: testAccessTTL,
	})

	refreshRepo := repository.NewRefreshTokenRepository(client, testRefreshTTL)
	blacklist := repository.NewBlacklistRepository(client, jwtService, testAccessTTL, false)
	userRepo := new(MockUserRepository)

	return &tokenServiceFixture{
		tokenService: service.NewTokenService(jwtService, refreshRepo, blacklist, userRepo, testAccessTTL),
		jwtService:   jwtService,
		refreshRepo:  refreshRepo,
		blacklist:    blacklist,
		userRepo:     userRepo,
		mr:           mr,
	}
}

func TestIssueTokenPair(t *testing.T) {
	f := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleUser, "agent", "127.0.0.1")
	require.NoError(t, err)

	// claims access токена совпадают с запрошенными
	claims, err := f.jwtService.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)

	// refresh токен разрешается в запись с теми же userID и ролью
	record, err := f.refreshRepo.Verify(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(42), record.UserID)
	assert.Equal(t, model.RoleUser, record.Role)

	// ExpiresIn согласован с фактическим сроком из кодека
	assert.Equal(t, int64(testAccessTTL.Seconds()), pair.ExpiresIn)
	assert.WithinDuration(t, time.Now().Add(testAccessTTL), claims.ExpiresAt.Time, 5*time.Second)
}

// Ротация одноразовая: повторное предъявление того же токена отклоняется
func TestRotateRefreshToken_SingleUse(t *testing.T) {
	f := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleAdmin, "", "")
	require.NoError(t, err)

	newPair, err := f.tokenService.RotateRefreshToken(ctx, pair.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	// роль и пользователь наследуются из изъятой записи
	claims, err := f.jwtService.Verify(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	_, err = f.tokenService.RotateRefreshToken(ctx, pair.RefreshToken, "", "")
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
}

// Запись пропала из хранилища (естественное истечение) — ротация отклоняется
func TestRotateRefreshToken_ExpiredRecord(t *testing.T) {
	f := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleUser, "", "")
	require.NoError(t, err)

	f.mr.Del("refresh_token:" + pair.RefreshToken)

	_, err = f.tokenService.RotateRefreshToken(ctx, pair.RefreshToken, "", "")
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
}

func TestRotateRefreshToken_UnknownToken(t *testing.T) {
	f := newTokenServiceFixture(t)

	_, err := f.tokenService.RotateRefreshToken(context.Background(), "never-issued", "", "")
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
}

// Logout: access токен сразу в чёрном списке, все refresh токены отозваны
func TestLogout(t *testing.T) {
	f := newTokenServiceFixture(t)
	ctx := context.Background()

	first, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleUser, "", "")
	require.NoError(t, err)
	second, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleUser, "", "")
	require.NoError(t, err)

	require.NoError(t, f.tokenService.Logout(ctx, 42, second.AccessToken))

	assert.True(t, f.blacklist.IsBlacklisted(ctx, second.AccessToken))

	for _, refreshToken := range []string{first.RefreshToken, second.RefreshToken} {
		record, err := f.refreshRepo.Verify(ctx, refreshToken)
		assert.NoError(t, err)
		assert.Nil(t, record)
	}

	_, _, err = f.tokenService.Authenticate(ctx, second.AccessToken)
	assert.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestAuthenticate_Success(t *testing.T) {
	f := newTokenServiceFixture(t)
	ctx := context.Background()

	user := &model.User{ID: 42, Email: "user@example.com", Role: model.RoleUser}
	f.userRepo.On("FindByID", mock.Anything, int64(42)).Return(user, nil)

	pair, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleUser, "", "")
	require.NoError(t, err)

	resolved, claims, err := f.tokenService.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user, resolved)
	assert.Equal(t, int64(42), claims.UserID)
	f.userRepo.AssertExpectations(t)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	f := newTokenServiceFixture(t)

	_, _, err := f.tokenService.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrTokenMissing)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	f := newTokenServiceFixture(t)

	// токен с тем же секретом, но уже истёкший
	expiredIssuer := security.NewJWTService(&config.JWTConfig{
		SecretKey:           "test-secret-key-0123456789abcdef",
		AccessTokenDuration: -time.Minute,
	})
	token, err := expiredIssuer.Issue(42, model.RoleUser)
	require.NoError(t, err)

	_, _, err = f.tokenService.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestAuthenticate_UserNotFound(t *testing.T) {
	f := newTokenServiceFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByID", mock.Anything, int64(42)).Return(nil, model.ErrUserNotFound)

	pair, err := f.tokenService.IssueTokenPair(ctx, 42, model.RoleUser, "", "")
	require.NoError(t, err)

	_, _, err = f.tokenService.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestAuthenticate_ForeignSignature(t *testing.T) {
	f := newTokenServiceFixture(t)

	foreign := security.NewJWTService(&config.JWTConfig{
		SecretKey:           "another-secret-key-fedcba9876543210",
		AccessTokenDuration: testAccessTTL,
	})
	token, err := foreign.Issue(42, model.RoleUser)
	require.NoError(t, err)

	_, _, err = f.tokenService.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, model.ErrInvalidSignature)
}
