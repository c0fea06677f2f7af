package middleware

import (
	"net/http"

	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeviceAuthMiddleware requires an allowlisted device id before the admin
// login endpoint will even check the password.
func DeviceAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing X-Device-ID header"})
			return
		}
		if !deviceAllowed(deviceID) {
			utils.GetLogger().Warn("Admin login from unlisted device",
				zap.String("deviceID", deviceID), zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Device not authorised"})
			return
		}

		c.Set("deviceID", deviceID)
		c.Next()
	}
}
