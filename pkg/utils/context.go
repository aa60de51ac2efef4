package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
