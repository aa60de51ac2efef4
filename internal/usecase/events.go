package usecase

import (
	"context"
	"time"

	"product-catalog/pkg/messaging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

type eventEmitter struct {
	publisher messaging.Publisher
	log       *zap.Logger
}

// emit never fails the caller; a lost event is only logged.
func (e eventEmitter) emit(ctx context.Context, eventType string, productID uuid.UUID, optionID *uuid.UUID, ownerID uuid.UUID) {
	if e.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := messaging.CatalogEvent{
		Type:       eventType,
		ProductID:  productID,
		OptionID:   optionID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}

	if err := e.publisher.Publish(ctx, eventType, event); err != nil {
		e.log.Warn("Failed to publish catalog event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("product_id", productID.String()),
		)
	}
}
