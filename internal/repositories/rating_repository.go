package repositories

import "storerating/internal/models"

// RatingRepository defines the interface for rating data access and the raw
// aggregates derived from it.
type RatingRepository interface {
	Upsert(userID, storeID uint, value int) (*models.Rating, error)
	Totals(storeID uint) (sum, count int64, err error)
	Distribution(storeID uint) (map[int]int64, error)
	UserRating(storeID, userID uint) (*int, error)
	Count() (int64, error)
}
