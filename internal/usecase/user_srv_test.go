package usecase

import (
	"context"
	"testing"

	"product-catalog/internal/data/entity"
	"product-catalog/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))

	assert.Len(t, repo.users, 2)
	assert.Equal(t, entity.RoleAdmin, repo.users["admin@example.com"].Role)

	user, err := NewAuthenticator(repo, zap.NewNop()).Authenticate(ctx, "user@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
}

func TestLoadPrincipal(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.add("user@example.com", "password", entity.RoleUser)
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	p, err := svc.LoadPrincipal(ctx, "User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, "USER", p.Role)

	_, err = svc.LoadPrincipal(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, apperror.NotFound("", ""))

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", me.Email)
}
