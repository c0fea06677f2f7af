package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler relays a contact-form submission through the email
// capability.
func (hb *HandlerBundle) ContactHandler(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Email.SendContactMessage(c.Request.Context(), msg); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to send message", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
