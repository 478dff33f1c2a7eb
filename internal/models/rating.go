package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a single user's score for a store. There is at most one per
// (user, store) pair; CreatedAt is refreshed whenever the score is replaced.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uint      `json:"store_id" gorm:"not null;uniqueIndex:idx_ratings_user_store;index"`
	Rating    int       `json:"rating" gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at"`

	User  *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Store *Store `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
