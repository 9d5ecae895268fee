package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// GetProfile GET /api/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), caller.UserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": gin.H{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"phone_number": u.Phone,
		"created_at":   u.CreatedAt,
	}}, "profile fetched", nil)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	if _, ok := mustCaller(c); !ok {
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.Logger.WithError(err).Warn("user search failed")
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	users := make([]gin.H, 0, len(hits))
	for _, u := range hits {
		users = append(users, gin.H{"id": u.ID, "name": u.Name})
	}
	response.Success(c, http.StatusOK, gin.H{"users": users}, "ok", nil)
}
