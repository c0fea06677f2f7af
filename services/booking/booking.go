package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/models"
	"salonbook/services/email"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

// ErrUnknownService is returned when the requested service id is not in the
// catalogue.
var ErrUnknownService = errors.New("unknown service")

// ErrSlotTaken is returned when the requested interval overlaps an existing
// appointment in the current snapshot.
var ErrSlotTaken = errors.New("the requested slot is no longer available")

// ErrNotOwner is returned when a customer tries to cancel an appointment that
// is not theirs.
var ErrNotOwner = errors.New("appointment belongs to another customer")

// LateCancelWindow is how close to the start a cancellation counts as late and
// carries the surcharge warning.
const LateCancelWindow = time.Hour

// BookingRequest is a customer's slot pick. The customer email comes from the
// session, never from the request body.
type BookingRequest struct {
	ServiceID     string
	Date          time.Time
	CustomerName  string
	CustomerPhone string
	Message       string
}

// Requester identifies who is asking for a cancellation.
type Requester struct {
	Email string
	Admin bool
}

// BookingService runs the customer-facing booking flows on top of the
// schedule cache and the external store.
type BookingService interface {
	CreateBooking(ctx context.Context, req BookingRequest, session *models.Session) (*models.Appointment, error)
	CancelBooking(ctx context.Context, id string, requester Requester) (late bool, err error)
	ListForUser(email string, now time.Time) (upcoming, history []models.Appointment)
	ListAllGrouped() []DayGroup
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Schedule schedule.ScheduleService
	Catalog  models.Catalog
	Email    email.EmailService
}

func (s *DefaultBookingService) catalog() models.Catalog {
	if s.Catalog != nil {
		return s.Catalog
	}
	return models.DefaultCatalog()
}

// CreateBooking re-runs the availability check server-side and submits the
// appointment. The check and the write are not atomic; two clients racing for
// the same slot can both land, which is accepted and surfaces only in the
// displayed schedule. The confirmation email never fails the booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req BookingRequest, session *models.Session) (*models.Appointment, error) {
	svc, ok := s.catalog().Lookup(req.ServiceID)
	if !ok {
		return nil, ErrUnknownService
	}

	if !s.Schedule.IsSlotAvailable(req.Date, svc.DurationTime()) {
		return nil, ErrSlotTaken
	}

	appt := models.Appointment{
		Date:          req.Date,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: session.Email,
		Message:       req.Message,
	}

	id, err := s.Schedule.Add(ctx, appt)
	if err != nil {
		return nil, err
	}
	appt.ID = id

	if err := s.Email.SendBookingConfirmation(ctx, email.BookingEmail{
		CustomerName:  appt.CustomerName,
		CustomerEmail: appt.CustomerEmail,
		CustomerPhone: appt.CustomerPhone,
		ServiceName:   svc.Name,
		Date:          appt.Date,
		Price:         svc.Price,
		Duration:      svc.Duration,
	}); err != nil {
		utils.GetLogger().Error("Booking confirmation email failed",
			zap.String("appointmentID", id), zap.Error(err))
	}

	return &appt, nil
}

// CancelBooking removes an appointment. Customers may only cancel their own;
// admins may cancel any. The late flag marks cancellations inside the
// surcharge window.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string, requester Requester) (bool, error) {
	appt, found := s.find(id)

	if !requester.Admin {
		if !found {
			// Hide existence of other customers' appointments behind the same
			// error the store raises for a truly missing id.
			return false, appointmentRepo.ErrNotFound
		}
		if !strings.EqualFold(appt.CustomerEmail, requester.Email) || requester.Email == "" {
			return false, ErrNotOwner
		}
	}

	if err := s.Schedule.Remove(ctx, id); err != nil {
		return false, err
	}

	late := found && time.Until(appt.Date) < LateCancelWindow && appt.Date.After(time.Now())
	return late, nil
}

// ListForUser splits a customer's appointments into upcoming and history
// relative to now. Upcoming sorts soonest first, history most recent first.
func (s *DefaultBookingService) ListForUser(userEmail string, now time.Time) (upcoming, history []models.Appointment) {
	for _, appt := range s.Schedule.Snapshot() {
		if !strings.EqualFold(appt.CustomerEmail, userEmail) {
			continue
		}
		if appt.Date.Before(now) {
			history = append(history, appt)
		} else {
			upcoming = append(upcoming, appt)
		}
	}
	sortByDate(upcoming, true)
	sortByDate(history, false)
	return upcoming, history
}

func (s *DefaultBookingService) find(id string) (models.Appointment, bool) {
	for _, appt := range s.Schedule.Snapshot() {
		if appt.ID == id {
			return appt, true
		}
	}
	return models.Appointment{}, false
}
