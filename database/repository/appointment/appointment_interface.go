package appointmentRepo

import (
	"context"
	"errors"

	"salonbook/models"
)

// ErrNotFound is returned when the referenced appointment does not exist.
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository defines access to the appointments collection of the
// external document store. The store is the sole source of truth: ids are
// assigned on insert and the feed delivers change notifications.
type AppointmentRepository interface {
	// GetAll retrieves every appointment in the collection.
	GetAll(ctx context.Context) ([]models.Appointment, error)
	// Create inserts a new appointment and returns the store-assigned id.
	// Any id already set on the appointment is discarded.
	Create(ctx context.Context, appt *models.Appointment) (string, error)
	// Delete removes the appointment with the given id. Returns ErrNotFound
	// when no such appointment exists; the collection is left unchanged.
	Delete(ctx context.Context, id string) error
	// Watch opens a change feed on the collection. onChange fires on every
	// write; onError reports a broken feed. The returned stop function tears
	// the feed down.
	Watch(ctx context.Context, onChange func(), onError func(error)) (func(), error)
}
