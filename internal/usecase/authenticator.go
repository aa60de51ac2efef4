package usecase

import (
	"context"
	"sync"

	"product-catalog/internal/data/entity"
	"product-catalog/internal/data/repository"
	"product-catalog/pkg/apperror"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator checks an email and password pair against the stored bcrypt hash.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// dummyPasswordHash is compared against when the email is unknown so both rejection paths pay the bcrypt cost.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, err := utils.HashPassword("unknown-user-placeholder")
	if err != nil {
		panic(err)
	}
	return hash
})

type authenticator struct {
	users         repository.UserRepository
	checkPassword func(password, hash string) bool
	log           *zap.Logger
}

func NewAuthenticator(users repository.UserRepository, log *zap.Logger) Authenticator {
	return &authenticator{
		users:         users,
		checkPassword: utils.CheckPasswordHash,
		log:           log.With(zap.String("service", "authenticator")),
	}
}

// Authenticate returns InvalidCredentials for both an unknown email and a wrong password.
func (a *authenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = utils.NormalizeEmail(email)

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		a.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, apperror.Unexpected(err)
	}
	if user == nil {
		a.checkPassword(password, dummyPasswordHash())
		a.log.Debug("Login attempt for unknown email", zap.String("email", email))
		return nil, apperror.InvalidCredentials()
	}

	if !a.checkPassword(password, user.PasswordHash) {
		a.log.Debug("Password mismatch", zap.String("user_id", user.ID.String()))
		return nil, apperror.InvalidCredentials()
	}

	return user, nil
}
