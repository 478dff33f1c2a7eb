package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordSpecialChars lists the characters that satisfy the password
// special-character rule.
const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

const upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var accountValidator = newAccountValidator()

func newAccountValidator() *validator.Validate {
	v := validator.New()
	rules := map[string]validator.Func{
		"account_email": func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		},
		"has_upper": func(fl validator.FieldLevel) bool {
			return strings.ContainsAny(fl.Field().String(), upperLetters)
		},
		"has_special": func(fl validator.FieldLevel) bool {
			return strings.ContainsAny(fl.Field().String(), PasswordSpecialChars)
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// fieldRule validates one string against validator tags, checked left to
// right, and maps the first failing tag to a client-facing message.
type fieldRule struct {
	field    string
	tags     string
	messages map[string]string
}

var (
	nameRule = fieldRule{
		field: "name",
		tags:  "required,min=20,max=60",
		messages: map[string]string{
			"required": "Name is required",
			"min":      "Name must be between 20 and 60 characters",
			"max":      "Name must be between 20 and 60 characters",
		},
	}
	emailRule = fieldRule{
		field: "email",
		tags:  "required,account_email",
		messages: map[string]string{
			"required":      "Email is required",
			"account_email": "Invalid email format",
		},
	}
	passwordRule = fieldRule{
		field: "password",
		tags:  "required,min=8,max=16,has_upper,has_special",
		messages: map[string]string{
			"required":    "Password is required",
			"min":         "Password must be between 8 and 16 characters",
			"max":         "Password must be between 8 and 16 characters",
			"has_upper":   "Password must contain at least one uppercase letter",
			"has_special": "Password must contain at least one special character",
		},
	}
	addressRule = fieldRule{
		field: "address",
		tags:  "required,max=400",
		messages: map[string]string{
			"required": "Address is required",
			"max":      "Address must not exceed 400 characters",
		},
	}
)

func (r fieldRule) check(value string) error {
	err := accountValidator.Var(value, r.tags)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := r.messages[verrs[0].Tag()]; ok {
			return invalid(r.field, msg)
		}
	}
	return err
}

// ValidateName checks a display name: required, 20 to 60 characters.
func ValidateName(name string) error { return nameRule.check(name) }

// ValidateEmail checks an email address against the platform's pattern.
func ValidateEmail(email string) error { return emailRule.check(email) }

// ValidatePassword checks length 8 to 16, one uppercase letter and one
// character from PasswordSpecialChars.
func ValidatePassword(password string) error { return passwordRule.check(password) }

// ValidateAddress checks a postal address: required, at most 400 characters.
func ValidateAddress(address string) error { return addressRule.check(address) }

// AccountInput carries the user-supplied fields of a new account.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// ValidateAccount runs the field rules in the order name, email, password,
// address and returns the first failure as a *ValidationError.
func ValidateAccount(in AccountInput) error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	return ValidateAddress(in.Address)
}
