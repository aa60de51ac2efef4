package token_test

import (
	"strings"
	"testing"
	"time"

	"product-catalog/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-that-is-at-least-32-bytes-long"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newCodec(t *testing.T, c *clock) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(secret, token.WithClock(c.now))
	require.NoError(t, err)
	return codec
}

func TestIssueThenVerify(t *testing.T) {
	c := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newCodec(t, c)

	signed, err := codec.Issue("user@example.com", "USER", token.KindAccess, time.Hour)
	require.NoError(t, err)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, token.KindAccess, claims.Kind)
	assert.True(t, claims.ExpiresAt.Equal(c.t.Add(time.Hour)))
	assert.True(t, claims.IssuedAt.Equal(c.t))
}

func TestVerifyExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &clock{t: issuedAt}
	codec := newCodec(t, c)

	signed, err := codec.Issue("user@example.com", "USER", token.KindAccess, time.Minute)
	require.NoError(t, err)

	t.Run("one second before expiry is valid", func(t *testing.T) {
		c.t = issuedAt.Add(time.Minute - time.Second)
		_, err := codec.Verify(signed)
		assert.NoError(t, err)
	})

	t.Run("exactly at expiry is expired", func(t *testing.T) {
		c.t = issuedAt.Add(time.Minute)
		_, err := codec.Verify(signed)
		assert.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("after expiry is expired", func(t *testing.T) {
		c.t = issuedAt.Add(time.Hour)
		_, err := codec.Verify(signed)
		assert.ErrorIs(t, err, token.ErrExpired)
	})
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	other, err := token.NewCodec(strings.Repeat("x", 40), token.WithClock(c.now))
	require.NoError(t, err)
	signed, err := other.Issue("user@example.com", "USER", token.KindAccess, time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidSignature)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)

	userToken, err := codec.Issue("user@example.com", "USER", token.KindAccess, time.Hour)
	require.NoError(t, err)
	adminToken, err := codec.Issue("admin@example.com", "ADMIN", token.KindAccess, time.Hour)
	require.NoError(t, err)

	// admin payload with the user's signature
	u := strings.Split(userToken, ".")
	a := strings.Split(adminToken, ".")
	forged := strings.Join([]string{a[0], a[1], u[2]}, ".")

	_, err = codec.Verify(forged)
	assert.ErrorIs(t, err, token.ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, token.ErrMalformed, "input %q", raw)
	}
}

func TestNewCodecRejectsShortSecret(t *testing.T) {
	_, err := token.NewCodec("short")
	assert.Error(t, err)
}
