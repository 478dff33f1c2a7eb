package services

import (
	"errors"
	"fmt"
	"strings"

	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/pkg/logger"

	"go.uber.org/zap"
)

// OwnerSignupInput is a store owner account together with its first store.
type OwnerSignupInput struct {
	AccountInput
	StoreName    string
	StoreAddress string
}

// OwnerSignupResult is what a successful onboarding created.
type OwnerSignupResult struct {
	Owner *models.User  `json:"user"`
	Store *models.Store `json:"store"`
}

// OnboardingService creates a STORE_OWNER and its store atomically.
type OnboardingService struct {
	uow    repositories.UnitOfWork
	events EventPublisher
}

// NewOnboardingService creates a new OnboardingService.
func NewOnboardingService(uow repositories.UnitOfWork, events EventPublisher) *OnboardingService {
	return &OnboardingService{
		uow:    uow,
		events: events,
	}
}

// SignupOwner checks the store fields and the account fields, then in one
// transaction rejects an existing email, inserts the owner and inserts the
// store. Nothing is persisted unless all three steps succeed.
func (s *OnboardingService) SignupOwner(in OwnerSignupInput) (*OwnerSignupResult, error) {
	storeName := strings.TrimSpace(in.StoreName)
	storeAddress := strings.TrimSpace(in.StoreAddress)
	if storeName == "" || storeAddress == "" {
		return nil, invalid("store", "Store name and address are required.")
	}
	if err := ValidateAccount(in.AccountInput); err != nil {
		return nil, err
	}
	if err := ValidateAddress(storeAddress); err != nil {
		return nil, invalid("storeAddress", "Store address must not exceed 400 characters")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	owner := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Address:  in.Address,
		Role:     models.RoleStoreOwner,
	}
	store := &models.Store{Name: storeName, Address: storeAddress}

	err = s.uow.WithinTransaction(func(users repositories.UserRepository, stores repositories.StoreRepository) error {
		if _, err := users.GetByEmail(owner.Email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if err := users.Create(owner); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrDuplicateEmail
			}
			return err
		}

		store.OwnerID = &owner.ID
		if err := stores.Create(store); err != nil {
			if errors.Is(err, repositories.ErrConstraintViolation) {
				return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrConstraintViolation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to onboard store owner: %w", err)
	}
	owner.Password = ""

	logger.Log.Info("Store owner onboarded", zap.Uint("user_id", owner.ID), zap.Uint("store_id", store.ID))
	publishEvent(s.events, EventOwnerOnboarded, OwnerSignupResult{Owner: owner, Store: store})
	return &OwnerSignupResult{Owner: owner, Store: store}, nil
}
