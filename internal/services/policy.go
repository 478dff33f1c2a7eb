package services

import "storerating/internal/models"

// HasRole reports whether the identity carries one of roles.
func HasRole(identity *Identity, roles ...models.Role) bool {
	if identity == nil {
		return false
	}
	for _, r := range roles {
		if identity.Role == r {
			return true
		}
	}
	return false
}

// AuthorizeStoreAccess decides whether identity may see a store's
// owner-scoped data. ADMIN always may; a STORE_OWNER only for a store it owns.
func AuthorizeStoreAccess(identity *Identity, store *models.Store) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	switch identity.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStoreOwner:
		if store != nil && store.OwnerID != nil && *store.OwnerID == identity.ID {
			return nil
		}
	}
	return ErrForbidden
}
