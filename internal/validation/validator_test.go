package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name" validate:"required,max=5"`
}

type request struct {
	Email    string `json:"email" validate:"required,email"`
	Servings int    `json:"servings" validate:"gte=1,lte=100"`
	Goal     string `json:"goal,omitempty" validate:"omitempty,oneof=lose maintain"`
	Items    []item `json:"items" validate:"dive"`
}

func TestValidatePasses(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Validate(request{Email: "sam@example.com", Servings: 2, Items: []item{{Name: "salt"}}})
	assert.NoError(t, err)
}

func TestValidateFieldMessages(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Validate(request{Email: "nope", Servings: 0, Goal: "bulk", Items: []item{{Name: ""}, {Name: "toolong"}}})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"email":         "must be a valid email address",
		"servings":      "must be greater than or equal to 1",
		"goal":          "must be one of: lose maintain",
		"items[0].name": "is required",
		"items[1].name": "must not exceed 5 characters",
	}, verr.Fields)
	assert.Contains(t, verr.Error(), "validation failed: email must be a valid email address")
}

func TestValidateField(t *testing.T) {
	t.Parallel()

	v := New()
	assert.NoError(t, v.Field("measurement_system", "metric", "oneof=metric imperial"))

	err := v.Field("admin_email", "not-an-email", "omitempty,email")
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"admin_email": "must be a valid email address"}, verr.Fields)

	assert.NoError(t, v.Field("admin_email", "", "omitempty,email"))
}
