package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenIsExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&RefreshToken{ExpiresAt: now.Add(time.Second)}).IsExpired(now))
	assert.True(t, (&RefreshToken{ExpiresAt: now}).IsExpired(now), "expiresAt == now counts as expired")
	assert.True(t, (&RefreshToken{ExpiresAt: now.Add(-time.Second)}).IsExpired(now))
}

func TestAuditTouchKeepsCreatedAt(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Audit{CreatedAt: created}

	a.Touch(created.Add(time.Hour))

	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), a.UpdatedAt)
}
