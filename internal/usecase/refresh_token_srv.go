package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-catalog/internal/data/entity"
	"product-catalog/internal/data/repository"
	"product-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrRefreshTokenExpired = errors.New("refresh token expired")

const (
	refreshTokenBytes       = 32
	maxTokenGenerationTries = 5
)

// RefreshTokenService keeps at most one refresh token per email.
type RefreshTokenService interface {
	// Create replaces any token held by email with a freshly generated one.
	Create(ctx context.Context, email string) (*entity.RefreshToken, error)
	FindByToken(ctx context.Context, value string) (*entity.RefreshToken, error)
	// VerifyExpiration deletes an expired token and reports ErrRefreshTokenExpired.
	VerifyExpiration(ctx context.Context, token *entity.RefreshToken) (*entity.RefreshToken, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type refreshTokenService struct {
	repo     repository.RefreshTokenRepository
	ttl      time.Duration
	generate func() (string, error)
	now      func() time.Time
	log      *zap.Logger
}

func NewRefreshTokenService(repo repository.RefreshTokenRepository, config *utils.Config, log *zap.Logger) RefreshTokenService {
	return &refreshTokenService{
		repo: repo,
		ttl:  config.JWT.RefreshTTL(),
		generate: func() (string, error) {
			return utils.GenerateSecureToken(refreshTokenBytes)
		},
		now: time.Now,
		log: log.With(zap.String("service", "refresh_token")),
	}
}

func (s *refreshTokenService) Create(ctx context.Context, email string) (*entity.RefreshToken, error) {
	// 1. Generate a value nobody else holds
	value, err := s.uniqueValue(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Build the row
	now := s.now().UTC()
	token := &entity.RefreshToken{
		ID:        uuid.New(),
		Token:     value,
		Email:     email,
		ExpiresAt: now.Add(s.ttl),
	}
	token.Touch(now)

	// 3. Delete the previous token and insert the new one in one transaction
	if err := s.repo.Replace(ctx, token); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	s.log.Info("Refresh token issued", zap.String("email", email), zap.Time("expires_at", token.ExpiresAt))
	return token, nil
}

func (s *refreshTokenService) uniqueValue(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxTokenGenerationTries; attempt++ {
		value, err := s.generate()
		if err != nil {
			return "", fmt.Errorf("generate refresh token: %w", err)
		}

		exists, err := s.repo.ExistsByToken(ctx, value)
		if err != nil {
			return "", err
		}
		if !exists {
			return value, nil
		}

		s.log.Warn("Refresh token collision, regenerating", zap.Int("attempt", attempt))
	}

	return "", fmt.Errorf("generate refresh token: no unique value after %d attempts", maxTokenGenerationTries)
}

func (s *refreshTokenService) FindByToken(ctx context.Context, value string) (*entity.RefreshToken, error) {
	return s.repo.FindByToken(ctx, value)
}

func (s *refreshTokenService) VerifyExpiration(ctx context.Context, token *entity.RefreshToken) (*entity.RefreshToken, error) {
	if !token.IsExpired(s.now()) {
		return token, nil
	}

	if err := s.repo.DeleteByID(ctx, token.ID); err != nil {
		s.log.Error("Failed to delete expired refresh token", zap.Error(err), zap.String("email", token.Email))
		return nil, err
	}

	s.log.Info("Expired refresh token removed", zap.String("email", token.Email))
	return nil, ErrRefreshTokenExpired
}

func (s *refreshTokenService) DeleteByEmail(ctx context.Context, email string) error {
	return s.repo.DeleteByEmail(ctx, email)
}
