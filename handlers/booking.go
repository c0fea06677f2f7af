package handlers

import (
	"errors"
	"net/http"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/middleware"
	"salonbook/services/booking"

	"github.com/gin-gonic/gin"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"
)

// ServicesHandler lists the salon's service catalogue.
func (hb *HandlerBundle) ServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": hb.catalog()})
}

// DaySlotsHandler returns the half-hour candidate grid for a service on a day.
// Fully past days are rejected outright; today's past slots come back
// unavailable.
func (hb *HandlerBundle) DaySlotsHandler(c *gin.Context) {
	day, err := time.ParseInLocation(dayLayout, c.Query("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date, expected YYYY-MM-DD"})
		return
	}

	svc, ok := hb.catalog().Lookup(c.Query("serviceId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown service"})
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is in the past"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      day.Format(dayLayout),
		"serviceId": svc.ID,
		"slots":     hb.Schedule.DaySlots(day, svc, now),
	})
}

// CreateBookingHandler books a slot for the authenticated user.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Phone     string `json:"phone"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	start, err := time.ParseInLocation(dayLayout+" "+timeLayout, input.Date+" "+input.Time, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or time"})
		return
	}

	appt, err := hb.Booking.CreateBooking(c.Request.Context(), booking.BookingRequest{
		ServiceID:     input.ServiceID,
		Date:          start,
		CustomerName:  input.Name,
		CustomerPhone: input.Phone,
		Message:       input.Message,
	}, session)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnknownService):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// MyAppointmentsHandler lists the authenticated user's appointments split into
// upcoming and history.
func (hb *HandlerBundle) MyAppointmentsHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	upcoming, history := hb.Booking.ListForUser(session.Email, time.Now())
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming, "history": history})
}

// CancelBookingHandler cancels one of the authenticated user's appointments.
// Cancellations under an hour before the start carry a late flag for the
// surcharge warning.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	late, err := hb.Booking.CancelBooking(c.Request.Context(), c.Param("id"), booking.Requester{Email: session.Email})
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	resp := gin.H{"status": "cancelled", "late": late}
	if late {
		resp["warning"] = "Cancelación con menos de 1 hora de antelación; puede aplicarse un recargo."
	}
	c.JSON(http.StatusOK, resp)
}
