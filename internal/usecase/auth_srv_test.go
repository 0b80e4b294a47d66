package usecase

import (
	"context"
	"testing"
	"time"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAdmin(t *testing.T) *entity.AdminUser {
	t.Helper()
	hash, err := utils.HashPassword("secret-password")
	require.NoError(t, err)
	return &entity.AdminUser{
		ID:           1,
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         "admin",
		IsActive:     true,
	}
}

func newTestAuthService(admins *fakeAdminUserRepo, sessions *fakeSessionRepo) AuthService {
	repo := &repository.Repository{AdminUser: admins, Session: sessions}
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	return NewAuthService(repo, config, zap.NewNop())
}

func TestAuthService_Login_Success(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	sessions := newFakeSessionRepo(admins)
	svc := newTestAuthService(admins, sessions)

	result, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "admin",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.User.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)

	user, err := sessions.FindValidSession(context.Background(), result.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	svc := newTestAuthService(admins, newFakeSessionRepo(admins))

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	admins := newFakeAdminUserRepo()
	svc := newTestAuthService(admins, newFakeSessionRepo(admins))

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	admin := testAdmin(t)
	admin.IsActive = false
	admins := newFakeAdminUserRepo(admin)
	svc := newTestAuthService(admins, newFakeSessionRepo(admins))

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "admin",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Logout_InvalidatesSession(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	sessions := newFakeSessionRepo(admins)
	svc := newTestAuthService(admins, sessions)

	result, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "admin",
		Password: "secret-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.Token))

	user, err := sessions.FindValidSession(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthService_Me(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	svc := newTestAuthService(admins, newFakeSessionRepo(admins))

	me, err := svc.Me(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Administrator", me.FullName)

	_, err = svc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	sessions := newFakeSessionRepo(admins)
	svc := newTestAuthService(admins, sessions)

	err := svc.ChangePassword(context.Background(), 1, &request.ChangePasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "even-more-secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "admin",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "admin",
		Password: "even-more-secret",
	})
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	svc := newTestAuthService(admins, newFakeSessionRepo(admins))

	err := svc.ChangePassword(context.Background(), 1, &request.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "even-more-secret",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword_TooShort(t *testing.T) {
	admins := newFakeAdminUserRepo(testAdmin(t))
	svc := newTestAuthService(admins, newFakeSessionRepo(admins))

	err := svc.ChangePassword(context.Background(), 1, &request.ChangePasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "short",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
