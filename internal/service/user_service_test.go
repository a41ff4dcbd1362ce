package service

import (
	"context"
	"testing"

	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@visualcreativa.com", "secret1", types.RoleUser)

	_, err := f.svcs.User.Create(context.Background(), "Other", "A@visualcreativa.com", "secret2", types.RoleUser)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svcs.User.Create(context.Background(), "Other", "b@visualcreativa.com", "secret2", "owner")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestUserUpdateIsPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@visualcreativa.com", "secret1", types.RoleUser)
	f.user(t, "b@visualcreativa.com", "secret1", types.RoleUser)

	updated, err := f.svcs.User.Update(ctx, u.ID, strPtr("Renamed"), nil, strPtr("newpass"), strPtr(types.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "a@visualcreativa.com", updated.Email)
	assert.Equal(t, types.RoleAdmin, updated.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass")))

	_, err = f.svcs.User.Update(ctx, u.ID, nil, strPtr("b@visualcreativa.com"), nil, nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svcs.User.Update(ctx, "missing", strPtr("x"), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDeleteSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin@visualcreativa.com", "Admin123!", types.RoleAdmin)
	other := f.user(t, "u@visualcreativa.com", "User123!", types.RoleUser)

	assert.ErrorIs(t, f.svcs.User.Delete(ctx, admin.ID, admin.ID), ErrCannotDeleteSelf)
	require.NoError(t, f.svcs.User.Delete(ctx, admin.ID, other.ID))
	assert.ErrorIs(t, f.svcs.User.Delete(ctx, admin.ID, other.ID), ErrNotFound)

	users, err := f.svcs.User.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)
}
