package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	errs := ValidateRegister("alice@example.com", "Alice", "Password1")
	assert.False(t, errs.HasErrors())

	errs = ValidateRegister("", "", "")
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "password")

	errs = ValidateRegister("not-an-email", "Alice", "Password1")
	assert.Contains(t, errs, "email")
}

func TestValidateRegisterPasswordRules(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Password1", true},
		{"too short", "Pa1", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no digit", "Passwordx", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateRegister("alice@example.com", "Alice", tc.password)
			if tc.ok {
				assert.NotContains(t, errs, "password")
			} else {
				assert.Contains(t, errs, "password")
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	errs := ValidateLogin("alice@example.com", "whatever")
	assert.False(t, errs.HasErrors())

	errs = ValidateLogin("", "")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestValidateProduct(t *testing.T) {
	errs := ValidateProduct("Classic White Tee", 29.99, 50)
	assert.False(t, errs.HasErrors())

	errs = ValidateProduct("", 0, -1)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "stock")
}

func TestValidateBrand(t *testing.T) {
	errs := ValidateBrand("Urban Style", "Contemporary urban fashion", "Streetwear")
	assert.False(t, errs.HasErrors())

	errs = ValidateBrand("", "", "")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "category")
}

func TestValidatePostAndComment(t *testing.T) {
	assert.False(t, ValidatePost("New drop today").HasErrors())
	assert.Contains(t, ValidatePost("   "), "content")

	assert.False(t, ValidateComment("love it").HasErrors())
	assert.Contains(t, ValidateComment(""), "content")
}
