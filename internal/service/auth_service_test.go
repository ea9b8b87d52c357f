package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cardintake/internal/config"
	"cardintake/internal/domain"
	"cardintake/internal/service"
	"cardintake/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "cardintake-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func activeClinic(id uuid.UUID) *domain.Tenant {
	return &domain.Tenant{
		ID:       id,
		Name:     "Riverside Therapy",
		Slug:     "riverside",
		IsActive: true,
	}
}

func activeStaff(tenantID uuid.UUID, password string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "staff@clinic.test",
		PasswordHash: hashPassword(password),
		FullName:     "Front Desk",
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	tenantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_NormalizesSlug(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "  Riverside ",
		Email:      user.Email,
		Password:   "password123",
	})

	require.NoError(t, err)
	tenantRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "not-the-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownSlugHidesExistence(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantRepo.On("GetBySlug", mock.Anything, "no-such-clinic").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "no-such-clinic",
		Email:      "staff@clinic.test",
		Password:   "password123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenant := activeClinic(uuid.New())
	tenant.IsActive = false
	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(tenant, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      "staff@clinic.test",
		Password:   "password123",
	})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "password123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "password123",
	})
	require.NoError(t, err)

	// A refresh token carries the wrong audience for API calls.
	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsForeignSecret(t *testing.T) {
	cfg := testJWTConfig()
	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-different-secret-entirely"

	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, cfg)
	otherSvc := service.NewAuthService(userRepo, tenantRepo, otherCfg)

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := otherSvc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_IssuesNewPair(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenantID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenantID := uuid.New()
	user := activeStaff(tenantID, "password123")

	tenantRepo.On("GetBySlug", mock.Anything, "riverside").Return(activeClinic(tenantID), nil)
	userRepo.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "riverside",
		Email:      user.Email,
		Password:   "password123",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
