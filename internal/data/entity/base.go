package entity

import (
	"time"
)

// Audit is embedded in every persisted entity; the repository layer stamps both fields.
type Audit struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Touch sets both timestamps for a new row.
func (a *Audit) Touch(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
