package messaging

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventOptionCreated  = "product.option.created"
	EventOptionUpdated  = "product.option.updated"
	EventOptionDeleted  = "product.option.deleted"
)

// CatalogEvent carries enough for consumers to refetch what changed.
type CatalogEvent struct {
	Type       string     `json:"type"`
	ProductID  uuid.UUID  `json:"productId"`
	OptionID   *uuid.UUID `json:"optionId,omitempty"`
	OwnerID    uuid.UUID  `json:"ownerId"`
	OccurredAt time.Time  `json:"occurredAt"`
}
