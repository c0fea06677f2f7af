package middleware

import (
	"net/http"
	"strings"

	"salonbook/models"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionKey is the gin context key carrying the authenticated session.
const SessionKey = "session"

// UserAuthMiddleware verifies the Firebase ID token presented by the client
// and places the resulting session on the context. Ownership checks downstream
// trust the verified email, never a body field.
func UserAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		client := utils.GetFirebaseAuthClient()
		if client == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Auth provider unavailable"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			utils.GetLogger().Debug("ID token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		email, _ := token.Claims["email"].(string)
		c.Set(SessionKey, &models.Session{
			UID:     token.UID,
			Email:   email,
			IDToken: idToken,
		})
		c.Next()
	}
}

// SessionFromContext returns the session placed by UserAuthMiddleware.
func SessionFromContext(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}
