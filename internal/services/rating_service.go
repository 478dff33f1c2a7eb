package services

import (
	"errors"
	"fmt"

	"storerating/internal/metrics"
	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/pkg/logger"

	"go.uber.org/zap"
)

// RatingService handles rating submissions.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	storeRepo  repositories.StoreRepository
	events     EventPublisher
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repositories.RatingRepository, storeRepo repositories.StoreRepository, events EventPublisher) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		events:     events,
	}
}

// RatingSubmitted is the payload of the rating.submitted event.
type RatingSubmitted struct {
	UserID  uint `json:"user_id"`
	StoreID uint `json:"store_id"`
	Rating  int  `json:"rating"`
}

// Submit records userID's rating of storeID, replacing any earlier one.
func (s *RatingService) Submit(userID, storeID uint, value int) (*models.Rating, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, invalid("rating", fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("store", storeID)
		}
		return nil, fmt.Errorf("failed to load store for rating: %w", err)
	}

	rating, err := s.ratingRepo.Upsert(userID, storeID, value)
	if err != nil {
		if errors.Is(err, repositories.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		}
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	metrics.RecordRatingSubmitted()
	logger.Log.Info("Rating submitted",
		zap.Uint("user_id", userID), zap.Uint("store_id", storeID), zap.Int("rating", value))
	publishEvent(s.events, EventRatingSubmitted, RatingSubmitted{UserID: userID, StoreID: storeID, Rating: value})
	return rating, nil
}
