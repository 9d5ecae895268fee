package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// proxyHeaders are consulted in order; X-Forwarded-For contributes its
// left-most entry.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP stores the client IP under "real_ip". Proxy headers are trusted only
// when trustProxy is set; otherwise gin's ClientIP is used as is.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if trustProxy {
			for _, h := range proxyHeaders {
				v := c.GetHeader(h)
				if v == "" {
					continue
				}
				first, _, _ := strings.Cut(v, ",")
				if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
					c.Set("real_ip", ip.String())
					c.Next()
					return
				}
			}
		}
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
