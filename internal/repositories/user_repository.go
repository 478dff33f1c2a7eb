package repositories

import "storerating/internal/models"

// UserFilter narrows and orders an admin user listing.
// Unknown SortBy or SortOrder values are ignored in favor of name ASC.
type UserFilter struct {
	Role      models.Role
	Search    string
	SortBy    string
	SortOrder string
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetCredentialsByID(id uint) (*models.User, error)
	List(filter UserFilter) ([]models.User, error)
	UpdatePassword(id uint, passwordHash string) error
	Count() (int64, error)
}
