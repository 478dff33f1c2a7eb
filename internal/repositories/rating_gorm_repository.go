package repositories

import (
	"errors"
	"fmt"

	"storerating/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Upsert records value as userID's rating of storeID. It is a single
// INSERT ... ON CONFLICT (user_id, store_id) DO UPDATE statement: a repeat
// submission replaces the value and refreshes created_at in place.
func (r *GORMRatingRepository) Upsert(userID, storeID uint, value int) (*models.Rating, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, fmt.Errorf("rating %d outside %d-%d: %w", value, models.MinRating, models.MaxRating, ErrConstraintViolation)
	}

	rating := &models.Rating{
		UserID:  userID,
		StoreID: storeID,
		Rating:  value,
	}
	err := r.db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "created_at"}),
		},
		clause.Returning{},
	).Omit(clause.Associations).Create(rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating for user %d on store %d: %w", userID, storeID, translateError(err))
	}
	return rating, nil
}

// Totals returns the sum and number of a store's ratings, both 0 when unrated.
func (r *GORMRatingRepository) Totals(storeID uint) (sum, count int64, err error) {
	var totals struct {
		Sum   int64
		Count int64
	}
	err = r.db.Model(&models.Rating{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute rating totals for store %d: %w", storeID, err)
	}
	return totals.Sum, totals.Count, nil
}

// Distribution counts ratings per value. Values nobody chose are absent.
func (r *GORMRatingRepository) Distribution(storeID uint) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.Model(&models.Rating{}).
		Select("rating, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating distribution for store %d: %w", storeID, err)
	}

	dist := make(map[int]int64, len(rows))
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return dist, nil
}

// UserRating returns the value userID gave storeID, or nil if none.
func (r *GORMRatingRepository) UserRating(storeID, userID uint) (*int, error) {
	var rating models.Rating
	err := r.db.Select("rating").First(&rating, "store_id = ? AND user_id = ?", storeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating of user %d for store %d: %w", userID, storeID, err)
	}
	return &rating.Rating, nil
}

// Count returns the number of ratings.
func (r *GORMRatingRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Rating{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return n, nil
}
