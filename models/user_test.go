package models

import (
	"testing"

	"github.com/lucamori/vinea/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpRequestValid(t *testing.T) {
	req := &SignUpRequest{
		Name:     "Luca",
		Surname:  "Mori",
		Email:    "luca@example.com",
		Password: "Str0ng-Passw0rd!",
	}
	assert.NoError(t, req.Validate())
}

func TestSignUpRequestCollectsAllIssues(t *testing.T) {
	// İlk hatada durmaz — email VE şifre hataları birlikte döner
	req := &SignUpRequest{
		Email:    "not-an-email",
		Password: "weak",
	}

	err := req.Validate()
	require.Error(t, err)

	var verrs *pkg.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Issues, "invalid email format")
	assert.GreaterOrEqual(t, len(verrs.Issues), 3)
}

func TestSignUpRequestTrimsWhitespace(t *testing.T) {
	req := &SignUpRequest{
		Name:     "  Luca  ",
		Email:    "  luca@example.com  ",
		Password: "Str0ng-Passw0rd!",
	}

	require.NoError(t, req.Validate())
	assert.Equal(t, "Luca", req.Name)
	assert.Equal(t, "luca@example.com", req.Email)
}

func TestEmailFormat(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "luca@sub.example.org"}
	invalid := []string{"", "plain", "no@tld", "spaces in@mail.com", "@example.com"}

	for _, email := range valid {
		assert.True(t, EmailRegex().MatchString(email), "geçerli olmalı: %s", email)
	}
	for _, email := range invalid {
		assert.False(t, EmailRegex().MatchString(email), "geçersiz olmalı: %s", email)
	}
}

func TestPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		issues   int
	}{
		{"geçerli şifre", "Str0ng-Passw0rd!", 0},
		{"boşluk sembol sayılır", "Abcdefgh1 x", 0},
		{"çok kısa ama tüm sınıflar var", "Ab1!", 1},
		{"küçük harf yok", "UPPERCASE-123", 1},
		{"büyük harf yok", "lowercase-123", 1},
		{"rakam yok", "No-Digits-Here!", 1},
		{"sembol yok", "NoSymbols123A", 1},
		{"her şey eksik", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ValidatePasswordPolicy(tt.password), tt.issues)
		})
	}
}

func TestSignInRequestValidation(t *testing.T) {
	assert.Error(t, (&SignInRequest{Password: "x"}).Validate())
	assert.Error(t, (&SignInRequest{Email: "a@b.co"}).Validate())
	assert.NoError(t, (&SignInRequest{Email: "a@b.co", Password: "x"}).Validate())
}

func TestChangePasswordRequestValidation(t *testing.T) {
	err := (&ChangePasswordRequest{NewPassword: "weak"}).Validate()
	require.Error(t, err)

	var verrs *pkg.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Issues, "current_password is required")

	assert.NoError(t, (&ChangePasswordRequest{
		CurrentPassword: "Old-Passw0rd!",
		NewPassword:     "N3w-Passw0rd!",
	}).Validate())
}

func TestValidatePagination(t *testing.T) {
	p, err := ValidatePagination(2, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Offset())

	_, err = ValidatePagination(0, 10, 100)
	assert.Error(t, err)

	_, err = ValidatePagination(1, 101, 100)
	assert.Error(t, err)
}
