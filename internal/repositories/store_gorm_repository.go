package repositories

import (
	"fmt"

	"storerating/internal/models"

	"gorm.io/gorm"
)

var storeSortColumns = map[string]string{
	"name":           "s.name",
	"email":          "s.email",
	"address":        "s.address",
	"overallRating":  "avg_rating",
	"overall_rating": "avg_rating",
}

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
// db may be the connection pool or a transaction handle.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// ratingTotals selects the integer aggregates StoreWithRating carries.
// avg_rating is only used for ordering.
const ratingTotals = "COALESCE(SUM(r.rating), 0) AS rating_sum, COUNT(r.id) AS rating_count, COALESCE(AVG(r.rating), 0) AS avg_rating"

// withRatings is the shared base query: every store row left-joined with its
// ratings and grouped so unrated stores report a zero sum and count. When
// userID is set the caller's own rating is selected as user_rating.
func (r *GORMStoreRepository) withRatings(userID *uint) *gorm.DB {
	query := r.db.Table("stores AS s")
	if userID != nil {
		query = query.Select("s.*, "+ratingTotals+", "+
			"(SELECT ur.rating FROM ratings ur WHERE ur.user_id = ? AND ur.store_id = s.id) AS user_rating", *userID)
	} else {
		query = query.Select("s.*, " + ratingTotals)
	}
	return query.Joins("LEFT JOIN ratings r ON r.store_id = s.id").Group("s.id")
}

// Create creates a new store in the database.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if err := r.db.Omit("Owner").Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", translateError(err))
	}
	return nil
}

// GetByID retrieves a single store by its ID.
func (r *GORMStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get store by ID %d: %w", id, translateError(err))
	}
	return &store, nil
}

// GetWithRating retrieves a store together with its rating totals.
func (r *GORMStoreRepository) GetWithRating(id uint) (*StoreWithRating, error) {
	var rows []StoreWithRating
	if err := r.withRatings(nil).Where("s.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get store %d with rating: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("store with ID %d not found: %w", id, ErrNotFound)
	}
	return &rows[0], nil
}

// ListWithRatings returns every store by name with its rating totals and, when
// userID is set, that user's own rating.
func (r *GORMStoreRepository) ListWithRatings(userID *uint) ([]StoreWithRating, error) {
	rows := []StoreWithRating{}
	if err := r.withRatings(userID).Order("s.name ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return rows, nil
}

// ListAll returns the admin view: stores with owner details and rating totals,
// filtered by a case-insensitive substring over name, email and address.
func (r *GORMStoreRepository) ListAll(filter StoreFilter) ([]StoreWithRating, error) {
	query := r.db.Table("stores AS s").
		Select("s.*, u.name AS owner_name, u.email AS owner_email, " + ratingTotals).
		Joins("LEFT JOIN users u ON u.id = s.owner_id").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Group("s.id, u.name, u.email")
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(s.name) LIKE ? OR LOWER(s.email) LIKE ? OR LOWER(s.address) LIKE ?)", pattern, pattern, pattern)
	}

	rows := []StoreWithRating{}
	if err := query.Order(orderClause(filter.SortBy, filter.SortOrder, storeSortColumns, "s.name")).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return rows, nil
}

// ListByOwner returns the stores operated by ownerID, oldest first.
func (r *GORMStoreRepository) ListByOwner(ownerID uint) ([]StoreWithRating, error) {
	rows := []StoreWithRating{}
	if err := r.withRatings(nil).Where("s.owner_id = ?", ownerID).Order("s.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores for owner %d: %w", ownerID, err)
	}
	return rows, nil
}

// GetRatingsForStore lists who rated a store, newest first.
func (r *GORMStoreRepository) GetRatingsForStore(storeID uint) ([]StoreRater, error) {
	raters := []StoreRater{}
	err := r.db.Table("ratings AS r").
		Select("r.user_id, u.name AS user_name, u.email AS user_email, r.rating, r.created_at").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.store_id = ?", storeID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&raters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings for store %d: %w", storeID, err)
	}
	return raters, nil
}

// Count returns the number of stores.
func (r *GORMStoreRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Store{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return n, nil
}
