package usecase

import (
	"context"
	"fmt"
	"time"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/internal/dto/response"
	"coffee-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, adminID int64) (*response.AdminUserResponse, error)
	ChangePassword(ctx context.Context, adminID int64, req *request.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.AdminUser.FindActiveByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find admin user: %w", err)
	}
	if user == nil || !utils.CheckPassword(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("username", req.Username))
		return nil, domain.ErrInvalidCredentials
	}

	session := &entity.AdminSession{
		UserID:       user.ID,
		SessionToken: uuid.New(),
		ExpiresAt:    time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.repo.AdminUser.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to touch last login",
			zap.Error(err), zap.Int64("admin_id", user.ID))
		// Continue, the session is already valid
	}

	s.log.Info("Admin logged in",
		zap.Int64("admin_id", user.ID),
		zap.String("username", user.Username),
	)

	return &response.LoginResponse{
		Token:     session.SessionToken.String(),
		ExpiresAt: session.ExpiresAt,
		User:      response.AdminUserToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Delete(ctx, token); err != nil {
		return err
	}

	s.log.Info("Admin logged out")
	return nil
}

func (s *authService) Me(ctx context.Context, adminID int64) (*response.AdminUserResponse, error) {
	user, err := s.repo.AdminUser.FindByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("find admin user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrAdminNotFound
	}

	resp := response.AdminUserToResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, adminID int64, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.AdminUser.FindByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("find admin user: %w", err)
	}
	if user == nil {
		return domain.ErrAdminNotFound
	}

	if !utils.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.repo.AdminUser.UpdatePassword(ctx, adminID, hash); err != nil {
		return err
	}

	s.log.Info("Admin password changed", zap.Int64("admin_id", adminID))
	return nil
}
