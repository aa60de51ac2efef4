package response

import (
	"time"

	"product-catalog/internal/data/entity"
)

type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ShippingFee  float64   `json:"shippingFee"`
	RegisteredAt time.Time `json:"registeredAt"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ProductOptionResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Type            entity.OptionType `json:"type"`
	AdditionalPrice float64           `json:"additionalPrice"`
	ProductID       string            `json:"productId"`
	// only present for SELECT options
	OptionValues []string  `json:"optionValues,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ShippingFee:  p.ShippingFee,
		RegisteredAt: p.RegisteredAt,
		UserID:       p.UserID.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductToResponse(p))
	}
	return out
}

func OptionToResponse(o *entity.ProductOption) ProductOptionResponse {
	resp := ProductOptionResponse{
		ID:              o.ID.String(),
		Name:            o.Name,
		Type:            o.Type,
		AdditionalPrice: o.AdditionalPrice,
		ProductID:       o.ProductID.String(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.Type == entity.OptionTypeSelect {
		resp.OptionValues = make([]string, 0, len(o.Values))
		for _, v := range o.Values {
			resp.OptionValues = append(resp.OptionValues, v.Value)
		}
	}

	return resp
}

func OptionsToResponse(options []*entity.ProductOption) []ProductOptionResponse {
	out := make([]ProductOptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, OptionToResponse(o))
	}
	return out
}
