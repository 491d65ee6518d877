package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuth is a middleware that authenticates machine-to-machine requests
// using a pre-shared API key. The bcrypt hash of the key and the service
// identity it maps to come from configuration. When the header is absent or
// does not match, the request continues to the JWT middleware untouched.
func APIKeyAuth(apiKeyHash string, serviceUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKeyHash == "" {
			c.Next() // API key auth not configured
			return
		}

		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next() // No api key provided, let it continue
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(apiKeyHash), []byte(apiKey)); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API key rejected", "ip", c.ClientIP())
			c.Next() // Key did not match, fall through to JWT auth
			return
		}

		// Key is valid, set the service identity and skip JWT auth
		c.Set(string(userIDKey), serviceUserID)
		c.Set("authMethod", "api_key")
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, serviceUserID))
		c.Next()
	}
}
