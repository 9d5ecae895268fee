package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Guesses  *int   `json:"guesses" binding:"required,guesses"`
}

func TestToDetailsValidationErrors(t *testing.T) {
	Init()
	g := 9
	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Password: "short", Phone: "123", Guesses: &g})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be at least 8 characters long", d["password"])
	assert.Equal(t, "must be 10-20 characters long", d["phone"])
	assert.Equal(t, "must be an integer between 1 and 7", d["guesses"])
}

func TestToDetailsRequired(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&sample{Email: "a@x.com", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"guesses": "is required"}, ToDetails(err))
}

func TestToDetailsJSONErrors(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"guesses": 3.5}`), &s)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"guesses": "must be an integer"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"guesses": x}`), &s)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("eof")))
	assert.Nil(t, ToDetails(nil))
}
