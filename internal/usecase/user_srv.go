package usecase

import (
	"context"
	"time"

	"product-catalog/internal/data/entity"
	"product-catalog/internal/data/repository"
	"product-catalog/internal/dto/response"
	"product-catalog/pkg/apperror"
	"product-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// LoadPrincipal resolves the caller behind a verified access token.
	LoadPrincipal(ctx context.Context, email string) (*utils.Principal, error)
	Me(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	// SeedDefaults creates the demo accounts that are missing.
	SeedDefaults(ctx context.Context) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) LoadPrincipal(ctx context.Context, email string) (*utils.Principal, error) {
	user, err := s.userRepo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User", email)
	}

	return &utils.Principal{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}, nil
}

func (s *userService) Me(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User", id.String())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

type seedAccount struct {
	email    string
	password string
	role     entity.UserRole
}

var defaultAccounts = []seedAccount{
	{email: "user@example.com", password: "password", role: entity.RoleUser},
	{email: "admin@example.com", password: "password", role: entity.RoleAdmin},
}

func (s *userService) SeedDefaults(ctx context.Context) error {
	for _, acc := range defaultAccounts {
		exists, err := s.userRepo.ExistsByEmail(ctx, acc.email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := utils.HashPassword(acc.password)
		if err != nil {
			return err
		}

		user := &entity.User{
			ID:           uuid.New(),
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
		}
		user.Touch(time.Now().UTC())

		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		s.log.Info("Seeded account", zap.String("email", acc.email), zap.String("role", string(acc.role)))
	}

	return nil
}
