package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Price        float64   `db:"price"`
	ShippingFee  float64   `db:"shipping_fee"`
	RegisteredAt time.Time `db:"registered_at"`
	UserID       uuid.UUID `db:"user_id"`
	Audit
}
