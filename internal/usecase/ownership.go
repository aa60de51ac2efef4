package usecase

import (
	"product-catalog/pkg/apperror"

	"github.com/google/uuid"
)

// RequireOwner fails with AccessDenied unless caller owns the resource. Admins get no bypass.
func RequireOwner(ownerID, callerID uuid.UUID) error {
	if ownerID != callerID {
		return apperror.AccessDenied("You do not own this resource")
	}
	return nil
}
