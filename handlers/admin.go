package handlers

import (
	"errors"
	"net/http"
	"time"

	"salonbook/config"
	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 12 * time.Hour

// AdminLoginHandler exchanges the admin password for a short-lived JWT. The
// password is compared server-side against the configured bcrypt hash; the
// device id was already vetted by the device middleware.
func (hb *HandlerBundle) AdminLoginHandler(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	hash := config.AppConfig.AdminPasswordHash
	if hash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		utils.GetLogger().Warn("Failed admin login attempt", zap.String("deviceID", c.GetString("deviceID")))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}

	token, err := utils.GenerateAdminToken(c.GetString("deviceID"), adminTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue admin token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(adminTokenTTL.Seconds())})
}

// AdminListAppointmentsHandler returns every appointment grouped by day,
// newest first, with catalogue data resolved.
func (hb *HandlerBundle) AdminListAppointmentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": hb.Booking.ListAllGrouped()})
}

// AdminCancelAppointmentHandler cancels any appointment.
func (hb *HandlerBundle) AdminCancelAppointmentHandler(c *gin.Context) {
	_, err := hb.Booking.CancelBooking(c.Request.Context(), c.Param("id"), booking.Requester{Admin: true})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
