package adaptor

import (
	"product-catalog/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	Product       *ProductHandler
	ProductOption *ProductOptionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, service.User, log),
		Product:       NewProductHandler(service.Product, log),
		ProductOption: NewProductOptionHandler(service.ProductOption, log),
	}
}
