package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/pkg/logger"

	"go.uber.org/zap"
)

// StoreService serves the store listings and the aggregate views built on them.
type StoreService struct {
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
	userRepo   repositories.UserRepository
	events     EventPublisher
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository, userRepo repositories.UserRepository, events EventPublisher) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		events:     events,
	}
}

// StoreDetail is a single store with its aggregates and the caller's rating.
type StoreDetail struct {
	ID                 uint               `json:"id"`
	Name               string             `json:"name"`
	Email              *string            `json:"email"`
	Address            string             `json:"address"`
	OwnerID            *uint              `json:"owner_id"`
	OverallRating      float64            `json:"overallRating"`
	UserRating         *int               `json:"userRating"`
	RatingDistribution RatingDistribution `json:"ratingDistribution"`
}

// OwnerDashboard is a store owner's primary store and who rated it.
type OwnerDashboard struct {
	Store   repositories.StoreWithRating `json:"store"`
	Ratings []repositories.StoreRater    `json:"ratings"`
}

// CreateStoreInput carries the fields of a new store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *uint
}

func roundAll(rows []repositories.StoreWithRating) []repositories.StoreWithRating {
	for i := range rows {
		rows[i].OverallRating = RoundRating(rows[i].RatingSum, rows[i].RatingCount)
	}
	return rows
}

// ListStores returns every store with its overall rating and, for an
// authenticated caller, the caller's own rating.
func (s *StoreService) ListStores(identity *Identity) ([]repositories.StoreWithRating, error) {
	var userID *uint
	if identity != nil {
		userID = &identity.ID
	}
	rows, err := s.storeRepo.ListWithRatings(userID)
	if err != nil {
		return nil, err
	}
	return roundAll(rows), nil
}

// GetStoreDetail returns one store with its overall rating, zero-filled
// distribution and the caller's rating (nil when anonymous or unrated).
func (s *StoreService) GetStoreDetail(storeID uint, identity *Identity) (*StoreDetail, error) {
	row, err := s.storeRepo.GetWithRating(storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("store", storeID)
		}
		return nil, err
	}

	raw, err := s.ratingRepo.Distribution(storeID)
	if err != nil {
		return nil, err
	}

	detail := &StoreDetail{
		ID:                 row.ID,
		Name:               row.Name,
		Email:              row.Email,
		Address:            row.Address,
		OwnerID:            row.OwnerID,
		OverallRating:      RoundRating(row.RatingSum, row.RatingCount),
		RatingDistribution: zeroFilledDistribution(raw),
	}
	if identity != nil {
		detail.UserRating, err = s.ratingRepo.UserRating(storeID, identity.ID)
		if err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// CreateStore validates and inserts a store. The owner, when given, must exist.
func (s *StoreService) CreateStore(in CreateStoreInput) (*models.Store, error) {
	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return nil, invalid("name", "Store name is required")
	}
	if utf8.RuneCountInString(name) > 255 {
		return nil, invalid("name", "Store name must not exceed 255 characters")
	}
	if address == "" {
		return nil, invalid("address", "Store address is required")
	}
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	store := &models.Store{Name: name, Address: address, OwnerID: in.OwnerID}
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return nil, err
		}
		store.Email = &email
	}
	if in.OwnerID != nil {
		if _, err := s.userRepo.GetByID(*in.OwnerID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, invalid("owner_id", "Owner not found")
			}
			return nil, fmt.Errorf("failed to load store owner: %w", err)
		}
	}

	if err := s.storeRepo.Create(store); err != nil {
		if errors.Is(err, repositories.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		}
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Log.Info("Store created", zap.Uint("store_id", store.ID))
	publishEvent(s.events, EventStoreCreated, store)
	return store, nil
}

// ListStoresForAdmin returns the filtered admin listing with owner details.
func (s *StoreService) ListStoresForAdmin(filter repositories.StoreFilter) ([]repositories.StoreWithRating, error) {
	rows, err := s.storeRepo.ListAll(filter)
	if err != nil {
		return nil, err
	}
	return roundAll(rows), nil
}

// ListOwnedStores returns every store operated by ownerID.
func (s *StoreService) ListOwnedStores(ownerID uint) ([]repositories.StoreWithRating, error) {
	rows, err := s.storeRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return roundAll(rows), nil
}

// OwnerDashboard returns the owner's first store by id and its raters.
func (s *StoreService) OwnerDashboard(ownerID uint) (*OwnerDashboard, error) {
	owned, err := s.ListOwnedStores(ownerID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, fmt.Errorf("store for owner %d: %w", ownerID, ErrNotFound)
	}

	raters, err := s.storeRepo.GetRatingsForStore(owned[0].ID)
	if err != nil {
		return nil, err
	}
	return &OwnerDashboard{Store: owned[0], Ratings: raters}, nil
}

// ListStoreRaters returns who rated a store, newest first, if identity may
// see them. Only an ADMIN learns that a store does not exist; anyone else
// gets the same ErrForbidden as for a store they do not own.
func (s *StoreService) ListStoreRaters(identity *Identity, storeID uint) ([]repositories.StoreRater, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			if !HasRole(identity, models.RoleAdmin) {
				return nil, AuthorizeStoreAccess(identity, nil)
			}
			return nil, notFound("store", storeID)
		}
		return nil, err
	}
	if err := AuthorizeStoreAccess(identity, store); err != nil {
		return nil, err
	}
	return s.storeRepo.GetRatingsForStore(storeID)
}
