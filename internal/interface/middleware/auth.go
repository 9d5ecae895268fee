package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/pkg/helpers"
	"github.com/oksasatya/wordle-circles/pkg/response"
)

const callerKey = "caller"

// CallerFrom returns the identity attached by Auth or OptionalAuth.
func CallerFrom(c *gin.Context) (entity.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return entity.Caller{}, false
	}
	caller, ok := v.(entity.Caller)
	return caller, ok && caller.UserID != ""
}

// accessToken reads the access_token cookie, falling back to a Bearer header.
func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// resolveCaller validates the token and, when Redis is configured, checks the
// token's session id against the active session. The returned string is the
// failure message.
func resolveCaller(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) (entity.Caller, string) {
	token := accessToken(c)
	if token == "" {
		return entity.Caller{}, "missing access token"
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return entity.Caller{}, "invalid access token"
	}
	caller := entity.Caller{UserID: claims.UserID, SessionID: claims.SessionID}
	if rdb == nil {
		return caller, ""
	}

	data, err := rdb.HGetAll(c.Request.Context(), helpers.SessionKey(claims.UserID)).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return entity.Caller{}, "session not found"
	}
	caller.Name = data["name"]
	caller.Email = data["email"]
	return caller, ""
}

// Auth rejects requests without a valid access token and attaches the
// caller to the context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, msg := resolveCaller(c, rdb, jwt)
		if msg != "" {
			response.Error[any](c, http.StatusUnauthorized, msg, nil)
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// OptionalAuth attaches the caller when the request carries a valid token and
// lets every request through.
func OptionalAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller, msg := resolveCaller(c, rdb, jwt); msg == "" {
			c.Set(callerKey, caller)
		}
		c.Next()
	}
}
