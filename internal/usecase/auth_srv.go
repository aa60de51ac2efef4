package usecase

import (
	"context"
	"errors"

	"product-catalog/internal/data/repository"
	"product-catalog/internal/dto/request"
	"product-catalog/internal/dto/response"
	"product-catalog/pkg/apperror"
	"product-catalog/pkg/token"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	// Refresh issues a new access token and hands back the same refresh token.
	Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error)
	Logout(ctx context.Context, email string) error
}

type authService struct {
	authenticator Authenticator
	refreshTokens RefreshTokenService
	users         repository.UserRepository
	codec         *token.Codec
	config        *utils.Config
	log           *zap.Logger
}

func NewAuthService(
	authenticator Authenticator,
	refreshTokens RefreshTokenService,
	users repository.UserRepository,
	codec *token.Codec,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		authenticator: authenticator,
		refreshTokens: refreshTokens,
		users:         users,
		codec:         codec,
		config:        config,
		log:           log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation(errs)
	}

	// 2. Check credentials
	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Sign the access token
	accessToken, err := s.codec.Issue(user.Email, string(user.Role), token.KindAccess, s.config.JWT.AccessTTL())
	if err != nil {
		s.log.Error("Failed to issue access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Unexpected(err)
	}

	// 4. Replace the refresh token
	refresh, err := s.refreshTokens.Create(ctx, user.Email)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.tokenResponse(accessToken, refresh.Token), nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	// 2. Look up the stored token
	stored, err := s.refreshTokens.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if stored == nil {
		s.log.Debug("Unknown refresh token presented")
		return nil, apperror.InvalidRenewalToken(nil)
	}

	// 3. Reject and purge an expired token
	stored, err = s.refreshTokens.VerifyExpiration(ctx, stored)
	if errors.Is(err, ErrRefreshTokenExpired) {
		return nil, apperror.InvalidRenewalToken(err)
	}
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	// 4. Resolve the principal
	user, err := s.users.FindByEmail(ctx, stored.Email)
	if err != nil {
		s.log.Error("Failed to load user for refresh", zap.Error(err), zap.String("email", stored.Email))
		return nil, apperror.Unexpected(err)
	}
	if user == nil {
		s.log.Warn("Refresh token belongs to a missing user", zap.String("email", stored.Email))
		return nil, apperror.InvalidRenewalToken(nil)
	}

	// 5. Sign a new access token; the refresh token is not rotated
	accessToken, err := s.codec.Issue(user.Email, string(user.Role), token.KindAccess, s.config.JWT.AccessTTL())
	if err != nil {
		s.log.Error("Failed to issue access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Unexpected(err)
	}

	return s.tokenResponse(accessToken, stored.Token), nil
}

func (s *authService) Logout(ctx context.Context, email string) error {
	if err := s.refreshTokens.DeleteByEmail(ctx, email); err != nil {
		return apperror.Unexpected(err)
	}

	s.log.Info("User logged out", zap.String("email", email))
	return nil
}

func (s *authService) tokenResponse(accessToken, refreshToken string) *response.TokenResponse {
	return &response.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    response.TokenTypeBearer,
		ExpiresIn:    s.config.JWT.AccessTokenExpiration / 1000,
	}
}
