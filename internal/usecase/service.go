package usecase

import (
	"product-catalog/internal/data/repository"
	"product-catalog/pkg/messaging"
	"product-catalog/pkg/token"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	User          UserService
	Product       ProductService
	ProductOption ProductOptionService
}

func NewService(
	repo *repository.Repository,
	codec *token.Codec,
	publisher messaging.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	authenticator := NewAuthenticator(repo.User, log)
	refreshTokens := NewRefreshTokenService(repo.RefreshToken, config, log)

	return &Service{
		Auth:          NewAuthService(authenticator, refreshTokens, repo.User, codec, config, log),
		User:          NewUserService(repo.User, log),
		Product:       NewProductService(repo.Product, publisher, log),
		ProductOption: NewProductOptionService(repo.Product, repo.ProductOption, publisher, log),
	}
}
