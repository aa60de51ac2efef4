package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is linked to its user by email, not by a foreign key. One row per email.
type RefreshToken struct {
	ID        uuid.UUID `db:"id"`
	Token     string    `db:"token"`
	Email     string    `db:"email"`
	ExpiresAt time.Time `db:"expires_at"`
	Audit
}

// IsExpired reports expiresAt <= now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
