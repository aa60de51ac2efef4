package entity

import "github.com/google/uuid"

type OptionType string

const (
	OptionTypeInput  OptionType = "INPUT"
	OptionTypeSelect OptionType = "SELECT"
)

// MaxOptionsPerProduct bounds how many options one product may carry.
const MaxOptionsPerProduct = 3

type ProductOption struct {
	ID              uuid.UUID  `db:"id"`
	Name            string     `db:"name"`
	Type            OptionType `db:"type"`
	AdditionalPrice float64    `db:"additional_price"`
	ProductID       uuid.UUID  `db:"product_id"`
	Audit

	// Values is filled explicitly by the repository, only for SELECT options.
	Values []*OptionValue `db:"-"`
}

type OptionValue struct {
	ID       uuid.UUID `db:"id"`
	Value    string    `db:"value"`
	Position int       `db:"position"`
	OptionID uuid.UUID `db:"option_id"`
	Audit
}
