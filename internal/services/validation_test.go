package services_test

import (
	"strings"
	"testing"

	"storerating/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *services.AccountInput)
		field   string
		message string
	}{
		{"valid", func(in *services.AccountInput) {}, "", ""},
		{"name missing", func(in *services.AccountInput) { in.Name = "" }, "name", "Name is required"},
		{"name too short", func(in *services.AccountInput) { in.Name = strings.Repeat("a", 19) }, "name", "Name must be between 20 and 60 characters"},
		{"name at lower bound", func(in *services.AccountInput) { in.Name = strings.Repeat("a", 20) }, "", ""},
		{"name at upper bound", func(in *services.AccountInput) { in.Name = strings.Repeat("a", 60) }, "", ""},
		{"name too long", func(in *services.AccountInput) { in.Name = strings.Repeat("a", 61) }, "name", "Name must be between 20 and 60 characters"},
		{"email missing", func(in *services.AccountInput) { in.Email = "" }, "email", "Email is required"},
		{"email without domain dot", func(in *services.AccountInput) { in.Email = "alice@example" }, "email", "Invalid email format"},
		{"email with space", func(in *services.AccountInput) { in.Email = "ali ce@example.com" }, "email", "Invalid email format"},
		{"password missing", func(in *services.AccountInput) { in.Password = "" }, "password", "Password is required"},
		{"password too short", func(in *services.AccountInput) { in.Password = "Ab1!" }, "password", "Password must be between 8 and 16 characters"},
		{"password too long", func(in *services.AccountInput) { in.Password = "Abcdefghijklmno1!" }, "password", "Password must be between 8 and 16 characters"},
		{"password without uppercase", func(in *services.AccountInput) { in.Password = "abcdefg1!" }, "password", "Password must contain at least one uppercase letter"},
		{"password without special", func(in *services.AccountInput) { in.Password = "Abcdefg12" }, "password", "Password must contain at least one special character"},
		{"password with pipe special", func(in *services.AccountInput) { in.Password = "Abcdefg1|" }, "", ""},
		{"password with quote special", func(in *services.AccountInput) { in.Password = `Abcdefg1"` }, "", ""},
		{"address missing", func(in *services.AccountInput) { in.Address = "" }, "address", "Address is required"},
		{"address at limit", func(in *services.AccountInput) { in.Address = strings.Repeat("x", 400) }, "", ""},
		{"address too long", func(in *services.AccountInput) { in.Address = strings.Repeat("x", 401) }, "address", "Address must not exceed 400 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAccount()
			tt.mutate(&in)
			err := services.ValidateAccount(in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestValidateAccountReportsFirstFailureInFieldOrder(t *testing.T) {
	err := services.ValidateAccount(services.AccountInput{Email: "bad", Password: "x"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	err = services.ValidateAccount(services.AccountInput{Name: strings.Repeat("n", 25), Email: "bad", Password: "x"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	err = services.ValidateAccount(services.AccountInput{Name: strings.Repeat("n", 25), Email: "a@b.co", Password: "x"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestValidateNameCountsCharactersNotBytes(t *testing.T) {
	assert.NoError(t, services.ValidateName(strings.Repeat("é", 20)))
	assert.Error(t, services.ValidateName(strings.Repeat("é", 61)))
}
