package services_test

import (
	"testing"

	"storerating/internal/models"
	"storerating/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeStoreAccess(t *testing.T) {
	ownerID := uint(10)
	owned := &models.Store{ID: 1, OwnerID: &ownerID}
	unowned := &models.Store{ID: 2}

	owner := &services.Identity{ID: 10, Role: models.RoleStoreOwner}
	otherOwner := &services.Identity{ID: 11, Role: models.RoleStoreOwner}
	admin := &services.Identity{ID: 1, Role: models.RoleAdmin}
	user := &services.Identity{ID: 10, Role: models.RoleUser}

	assert.NoError(t, services.AuthorizeStoreAccess(owner, owned))
	assert.ErrorIs(t, services.AuthorizeStoreAccess(otherOwner, owned), services.ErrForbidden)
	assert.ErrorIs(t, services.AuthorizeStoreAccess(owner, unowned), services.ErrForbidden)

	assert.NoError(t, services.AuthorizeStoreAccess(admin, owned))
	assert.NoError(t, services.AuthorizeStoreAccess(admin, unowned))

	// a plain USER whose id happens to match the owner is still refused
	assert.ErrorIs(t, services.AuthorizeStoreAccess(user, owned), services.ErrForbidden)
	assert.ErrorIs(t, services.AuthorizeStoreAccess(nil, owned), services.ErrUnauthenticated)
}

func TestHasRole(t *testing.T) {
	admin := &services.Identity{Role: models.RoleAdmin}
	assert.True(t, services.HasRole(admin, models.RoleUser, models.RoleAdmin))
	assert.False(t, services.HasRole(admin, models.RoleStoreOwner))
	assert.False(t, services.HasRole(nil, models.RoleAdmin))
}
