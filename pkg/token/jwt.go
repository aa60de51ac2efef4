// Package token issues and verifies the signed access tokens handed out at login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const KindAccess = "access"

// MinSecretLength is the HS256 key size in bytes.
const MinSecretLength = 32

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrMalformed        = errors.New("token is malformed")
	ErrExpired          = errors.New("token has expired")
)

// Claims is what a verified token says about its bearer.
type Claims struct {
	Subject   string
	Role      string
	Kind      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	Role string `json:"role"`
	Kind string `json:"token_type"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}

	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) Issue(subject, role, kind string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := jwtClaims{
		Role: role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token for %s: %w", subject, err)
	}
	return signed, nil
}

// Verify checks signature and expiry. A token is expired once now >= exp.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	out := &Claims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		Kind:      claims.Kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
