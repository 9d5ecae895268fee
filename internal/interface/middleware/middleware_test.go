package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/wordle-circles/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
}

func whoami(c *gin.Context) {
	caller, ok := CallerFrom(c)
	c.JSON(http.StatusOK, gin.H{"ok": ok, "uid": caller.UserID, "sid": caller.SessionID})
}

func TestAuthAcceptsCookieAndBearer(t *testing.T) {
	jwt := newJWT()
	r := gin.New()
	r.GET("/me", Auth(nil, jwt), whoami)

	tok, _, err := jwt.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"uid":"u1","sid":"s1"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejects(t *testing.T) {
	jwt := newJWT()
	r := gin.New()
	r.GET("/me", Auth(nil, jwt), whoami)

	refresh, _, err := jwt.GenerateRefreshToken("u1", "s1")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":       "",
		"garbage":       "Bearer nope",
		"refresh token": "Bearer " + refresh,
		"wrong scheme":  "Basic abc",
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), `"success":false`, name)
	}
}

func TestOptionalAuth(t *testing.T) {
	jwt := newJWT()
	r := gin.New()
	r.GET("/me", OptionalAuth(nil, jwt), whoami)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":false,"uid":"","sid":""}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

func TestRealIP(t *testing.T) {
	serve := func(trust bool, hdr, val string) string {
		r := gin.New()
		r.Use(RealIP(trust))
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		if hdr != "" {
			req.Header.Set(hdr, val)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "203.0.113.7", serve(true, "X-Forwarded-For", "203.0.113.7, 10.0.0.1"))
	assert.Equal(t, "198.51.100.1", serve(true, "CF-Connecting-IP", "198.51.100.1"))
	assert.Equal(t, "10.0.0.9", serve(true, "X-Forwarded-For", "not-an-ip"))
	assert.Equal(t, "10.0.0.9", serve(false, "CF-Connecting-IP", "198.51.100.1"))
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"127.0.0.1": true, "192.168.1.4": true, "8.8.8.8": false, "": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("real_ip", ip)
		if ip == "" {
			c.Request.RemoteAddr = "bogus"
		}
		assert.Equal(t, want, allow(c), ip)
	}
}

func TestLimiterDisabledPassesThrough(t *testing.T) {
	var l *Limiter
	r := gin.New()
	r.GET("/", l.Handler(Limits{Max: 1, Window: time.Minute, Key: KeyByIP()}), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestKeyByUserIDFallsBackToIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("real_ip", "1.2.3.4")
	assert.Equal(t, "rl:user:anon:ip:1.2.3.4", KeyByUserID()(c))
}
