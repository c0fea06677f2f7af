package handlers

import (
	"salonbook/models"
	"salonbook/services/auth"
	"salonbook/services/booking"
	"salonbook/services/email"
	"salonbook/services/schedule"
)

// HandlerBundle groups the endpoint handlers' dependencies. main.go wires the
// concrete services in; tests substitute fakes.
type HandlerBundle struct {
	Auth     auth.AuthService
	Booking  booking.BookingService
	Schedule schedule.ScheduleService
	Email    email.EmailService
	Catalog  models.Catalog
}

func (hb *HandlerBundle) catalog() models.Catalog {
	if hb.Catalog != nil {
		return hb.Catalog
	}
	return models.DefaultCatalog()
}
