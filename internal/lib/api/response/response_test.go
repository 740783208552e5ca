package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketsRequest struct {
	GuestEmail string `validate:"required,email"`
	Tickets    int    `validate:"min=1,max=20"`
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(ticketsRequest{GuestEmail: "not-an-email", Tickets: 0})
	require.Error(t, err)

	var validateErr validator.ValidationErrors
	require.ErrorAs(t, err, &validateErr)

	resp := ValidationError(validateErr)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "field GuestEmail is not a valid email, field Tickets must be at least 1", resp.Error)
}

func TestOKAndError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Status: "OK"}, OK())
	assert.Equal(t, Response{Status: "Error", Error: "boom"}, Error("boom"))
}
