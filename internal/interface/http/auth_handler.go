package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
	"github.com/oksasatya/wordle-circles/pkg/helpers"
	"github.com/oksasatya/wordle-circles/pkg/response"
)

type AuthHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,pwd"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func tokenMeta(p application.TokenPair) map[string]any {
	return map[string]any{"access_expires_at": p.AccessTokenExpiry, "refresh_expires_at": p.RefreshTokenExpiry}
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": toUserDTO(u)}, "user registered successfully", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": toUserDTO(u)}, "login successful", tokenMeta(pair))
}

// Refresh POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", tokenMeta(pair))
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), caller.UserID); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", caller.UserID).Warn("logout: session not dropped")
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// AuthCheck GET /api/auth-check reports whether the request is authenticated.
// Cookie names are reported without their values.
func (h *AuthHandler) AuthCheck(c *gin.Context) {
	_, accessErr := c.Cookie(helpers.AccessCookie)
	cookies := make([]gin.H, 0, len(c.Request.Cookies()))
	for _, ck := range c.Request.Cookies() {
		cookies = append(cookies, gin.H{"name": ck.Name, "exists": true})
	}
	out := gin.H{
		"authenticated":   false,
		"hasSessionToken": accessErr == nil,
		"cookieInfo":      cookies,
		"session":         nil,
	}
	if caller, ok := middleware.CallerFrom(c); ok {
		out["authenticated"] = true
		user := gin.H{"name": caller.Name, "email": caller.Email}
		if caller.Email == "" {
			if u, err := h.Svc.GetProfile(c.Request.Context(), caller.UserID); err == nil {
				user = gin.H{"name": u.Name, "email": u.Email}
			}
		}
		out["session"] = gin.H{"user": user}
	}
	response.Success(c, http.StatusOK, out, "auth status", nil)
}
