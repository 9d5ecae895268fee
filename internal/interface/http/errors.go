package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
	"github.com/oksasatya/wordle-circles/pkg/response"
	"github.com/oksasatya/wordle-circles/pkg/validation"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{application.ErrInvalidInput, http.StatusBadRequest},
	{application.ErrInvalidCredentials, http.StatusUnauthorized},
	{application.ErrNotCircleMember, http.StatusForbidden},
	{application.ErrCircleNotFound, http.StatusNotFound},
	{application.ErrUserNotFound, http.StatusNotFound},
	{application.ErrDuplicateEmail, http.StatusConflict},
	{application.ErrAlreadyMember, http.StatusConflict},
	{application.ErrAlreadySubmitted, http.StatusConflict},
}

// StatusFor maps a service error onto an HTTP status and client message.
// Anything unrecognised is a 500 with a generic message.
func StatusFor(err error) (int, string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			var ve *application.ValidationError
			if errors.As(err, &ve) {
				return e.status, "invalid payload"
			}
			return e.status, e.err.Error()
		}
	}
	if errors.Is(err, application.ErrCircleCreationFailed) {
		return http.StatusInternalServerError, application.ErrCircleCreationFailed.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// fail writes the error envelope for err. 5xx errors are logged.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := StatusFor(err)
	var details any
	var ve *application.ValidationError
	if errors.As(err, &ve) {
		details = map[string]string{ve.Field: ve.Message}
	}
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
	}
	response.Error[any](c, status, msg, details)
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// mustCaller returns the authenticated caller or writes a 401.
func mustCaller(c *gin.Context) (entity.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
	}
	return caller, ok
}
