package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/repositories"
	"equipment-dashboard/pkg/config"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/service"
	"equipment-dashboard/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context, session authz.Session) (*dto.UserPublicDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) *AuthService {
	return &AuthService{userRepo: userRepo, cacheRepo: cacheRepo, jwtService: jwtService, logger: logger, cfg: cfg}
}

func toUserPublic(u entities.User) dto.UserPublicDTO {
	return dto.UserPublicDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Login counts failures per email, known or not, so probing unknown addresses is
// throttled the same way.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if err := s.checkLockout(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.handleFailedLoginAttempt(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, email)
		s.logger.Info("failed login", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, email)

	token, err := s.jwtService.GenerateToken(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &dto.AuthResponseDTO{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		User:        toUserPublic(*user),
	}, nil
}

func (s *AuthService) Me(ctx context.Context, session authz.Session) (*dto.UserPublicDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	res := toUserPublic(*user)
	return &res, nil
}

func (s *AuthService) checkLockout(ctx context.Context, email string) error {
	if _, err := s.cacheRepo.Get(ctx, "lockout:"+email); err == nil {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, email string) {
	attemptsKey := "login_attempts:" + email
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("login attempt counter unavailable", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, "lockout:"+email, "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("login locked", zap.String("email", email), zap.Duration("for", s.cfg.LockoutDuration))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, email string) {
	_ = s.cacheRepo.Del(ctx, "login_attempts:"+email, "lockout:"+email)
}
