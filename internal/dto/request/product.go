package request

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	ShippingFee float64 `json:"shippingFee" validate:"gte=0"`
}

type ProductOptionRequest struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Type            string   `json:"type" validate:"required,oneof=INPUT SELECT"`
	AdditionalPrice float64  `json:"additionalPrice" validate:"gte=0"`
	OptionValues    []string `json:"optionValues" validate:"omitempty,dive,required,max=100"`
}
