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

// UserService covers the administrator's user management.
type UserService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		events:   events,
	}
}

// CreateUserInput is an account created by an administrator with an explicit role.
type CreateUserInput struct {
	AccountInput
	Role string
}

// ListUsersInput carries the raw admin listing query.
type ListUsersInput struct {
	Role      string
	Search    string
	SortBy    string
	SortOrder string
}

func parseRoleField(raw string) (models.Role, error) {
	role, err := models.ParseRole(raw)
	if err != nil {
		return "", invalid("role", "Role must be one of USER, STORE_OWNER, ADMIN")
	}
	return role, nil
}

// CreateUser validates the account fields and role, then stores the user.
func (s *UserService) CreateUser(in CreateUserInput) (*models.User, error) {
	if err := ValidateAccount(in.AccountInput); err != nil {
		return nil, err
	}
	role, err := parseRoleField(in.Role)
	if err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Address:  in.Address,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Password = ""

	logger.Log.Info("User created by admin", zap.Uint("user_id", user.ID), zap.String("role", role.String()))
	publishEvent(s.events, EventUserRegistered, Identity{ID: user.ID, Email: user.Email, Role: user.Role})
	return user, nil
}

// ListUsers returns users matching the filter. An unknown role filter is a
// validation error; unknown sort keys fall back to name ASC.
func (s *UserService) ListUsers(in ListUsersInput) ([]models.User, error) {
	filter := repositories.UserFilter{
		Search:    in.Search,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	}
	if strings.TrimSpace(in.Role) != "" {
		role, err := parseRoleField(in.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = role
	}
	return s.userRepo.List(filter)
}
