package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,pwdmin"`
}

type confirmForm struct {
	Password string `validate:"required,pwdmin"`
	Confirm  string `validate:"eqfield=Password"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&registerForm{Username: "player_1", Password: "secret123"}))

	err := ValidateStruct(&registerForm{Password: "secret123"})
	assert.ErrorContains(t, err, "Username is required")

	err = ValidateStruct(&registerForm{Username: "ab", Password: "secret123"})
	assert.ErrorContains(t, err, "Username")

	err = ValidateStruct(&registerForm{Username: "has spaces", Password: "secret123"})
	assert.ErrorContains(t, err, "Username")

	err = ValidateStruct(&registerForm{Username: "player_1", Password: "short"})
	assert.ErrorContains(t, err, "Password")
}

func TestValidateStructEqField(t *testing.T) {
	assert.NoError(t, ValidateStruct(&confirmForm{Password: "secret123", Confirm: "secret123"}))

	err := ValidateStruct(&confirmForm{Password: "secret123", Confirm: "other"})
	assert.ErrorContains(t, err, "Confirm must equal Password")
}

func TestValidateStructRejectsNonStruct(t *testing.T) {
	assert.Error(t, ValidateStruct("not a struct"))
}
