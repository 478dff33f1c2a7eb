package repositories

import (
	"time"

	"storerating/internal/models"
)

// StoreFilter narrows and orders an admin store listing.
type StoreFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}

// StoreWithRating is a store row joined with the sum and count of its
// ratings. OverallRating is not read from the database; callers derive it
// from RatingSum and RatingCount.
type StoreWithRating struct {
	models.Store
	OwnerName     *string `json:"owner_name,omitempty"`
	OwnerEmail    *string `json:"owner_email,omitempty"`
	RatingSum     int64   `json:"-"`
	RatingCount   int64   `json:"-"`
	OverallRating float64 `json:"overallRating" gorm:"-"`
	UserRating    *int    `json:"userRating,omitempty"`
}

// StoreRater is one rating on a store together with who left it.
type StoreRater struct {
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id uint) (*models.Store, error)
	GetWithRating(id uint) (*StoreWithRating, error)
	ListWithRatings(userID *uint) ([]StoreWithRating, error)
	ListAll(filter StoreFilter) ([]StoreWithRating, error)
	ListByOwner(ownerID uint) ([]StoreWithRating, error)
	GetRatingsForStore(storeID uint) ([]StoreRater, error)
	Count() (int64, error)
}
