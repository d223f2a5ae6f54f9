package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronipollock/memory-palace-sub001/pkg/validator"
)

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidatePassesValidStruct(t *testing.T) {
	t.Parallel()

	v := validator.NewValidator()

	err := v.Validate(signupForm{Email: "user@example.com", Password: "long enough"})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	t.Parallel()

	v := validator.NewValidator()

	err := v.Validate(signupForm{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestValidateReportsMissingFields(t *testing.T) {
	t.Parallel()

	v := validator.NewValidator()

	err := v.Validate(signupForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "password is required")
}
