package repository

import (
	"errors"

	"product-catalog/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrOptionLimitReached is returned when a product already holds the maximum number of options.
	ErrOptionLimitReached = errors.New("option limit reached")
)

type Repository struct {
	User          UserRepository
	RefreshToken  RefreshTokenRepository
	Product       ProductRepository
	ProductOption ProductOptionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		RefreshToken:  NewRefreshTokenRepository(db, log),
		Product:       NewProductRepository(db, log),
		ProductOption: NewProductOptionRepository(db, log),
	}
}
