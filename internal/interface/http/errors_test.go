package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/wordle-circles/internal/application"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{&application.ValidationError{Field: "guesses", Message: "bad"}, http.StatusBadRequest, "invalid payload"},
		{application.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{application.ErrNotCircleMember, http.StatusForbidden, "not a member of this circle"},
		{application.ErrCircleNotFound, http.StatusNotFound, "circle not found"},
		{application.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{application.ErrDuplicateEmail, http.StatusConflict, "email already registered"},
		{application.ErrAlreadyMember, http.StatusConflict, "already a member of this circle"},
		{application.ErrAlreadySubmitted, http.StatusConflict, "score already submitted for today"},
		{fmt.Errorf("%w: boom", application.ErrCircleCreationFailed), http.StatusInternalServerError, "failed to create circle"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		status, msg := StatusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}
}
