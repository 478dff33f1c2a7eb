package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"storerating/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FlexibleID is an identifier sent either as a JSON number or as a numeric
// string, as browser forms tend to do.
type FlexibleID uint

// UnmarshalJSON accepts 12, "12" and null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = FlexibleID(n)
	return nil
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func (r RegisterRequest) account() services.AccountInput {
	return services.AccountInput{Name: r.Name, Email: r.Email, Password: r.Password, Address: r.Address}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OwnerSignupRequest is the body of POST /auth/signup-owner.
type OwnerSignupRequest struct {
	RegisterRequest
	StoreName    string `json:"storeName"`
	StoreAddress string `json:"storeAddress"`
}

// RatingRequest is the body of POST /ratings.
type RatingRequest struct {
	StoreID FlexibleID `json:"storeId" validate:"required"`
	Rating  int        `json:"rating" validate:"required,min=1,max=5"`
}

// ChangePasswordRequest is the body of PATCH /users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// CreateStoreRequest is the body of POST /stores and POST /admin/stores.
// The owner may be given as owner_id or ownerId.
type CreateStoreRequest struct {
	Name       string      `json:"name" validate:"required"`
	Email      string      `json:"email"`
	Address    string      `json:"address" validate:"required"`
	OwnerID    *FlexibleID `json:"owner_id"`
	OwnerIDAlt *FlexibleID `json:"ownerId"`
}

func (r CreateStoreRequest) input() services.CreateStoreInput {
	in := services.CreateStoreInput{Name: r.Name, Email: r.Email, Address: r.Address}
	owner := r.OwnerID
	if owner == nil || *owner == 0 {
		owner = r.OwnerIDAlt
	}
	if owner != nil && *owner != 0 {
		id := uint(*owner)
		in.OwnerID = &id
	}
	return in
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" validate:"required"`
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodes and shape-checks a request body. The first failing field
// comes back as a *services.ValidationError.
func parseBody(c *fiber.Ctx, v *validator.Validate, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &services.ValidationError{Field: "body", Message: "Invalid request body"}
	}
	if err := v.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &services.ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// idParam parses a positive numeric route parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, &services.ValidationError{Field: name, Message: fmt.Sprintf("Invalid %s", name)}
	}
	return uint(id), nil
}
