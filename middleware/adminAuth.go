package middleware

import (
	"net/http"
	"strings"

	"salonbook/config"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware gates the admin routes. The bearer token must be a valid
// admin JWT and the device it was issued to must still be on the allowlist.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		device, err := utils.ExtractAdminDeviceFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		if !deviceAllowed(device) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Device no longer authorised"})
			return
		}

		c.Set("adminDevice", device)
		c.Set("isAdmin", true)
		c.Next()
	}
}

func deviceAllowed(deviceID string) bool {
	allowed := config.AppConfig.AdminDeviceIDs
	// Empty allowlist means any device may hold an admin token.
	if len(allowed) == 0 {
		return true
	}
	for _, id := range allowed {
		if id == deviceID {
			return true
		}
	}
	return false
}
