package middleware

import (
	"crypto/subtle"
	"strings"

	"report-srv/pkg/response"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// bearerToken returns the Authorization header without its optional Bearer prefix.
func bearerToken(c *gin.Context) string {
	return strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), bearerPrefix))
}

// Auth verifies the user token from the Authorization header, falling back to the auth cookie.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tokenString := bearerToken(c)
		if tokenString == "" && m.cookieConfig.Name != "" {
			tokenString, _ = c.Cookie(m.cookieConfig.Name)
		}
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth: Verify failed: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := scope.NewScope(payload)
		if sc.UserID == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, sc)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// InternalAuth checks the shared internal key. An empty key rejects every request.
func (m Middleware) InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearerToken(c)
		if m.internalKey == "" || key == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
