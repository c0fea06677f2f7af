package schedule

import (
	"context"
	"sync"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/models"
)

// ScheduleService owns the locally cached appointment list and answers the
// availability queries used while building a new booking. The external store
// is the sole source of truth; the cache is only as fresh as the last
// delivered snapshot.
type ScheduleService interface {
	// Subscribe establishes the live feed. The initial load waits a bounded
	// time before failing with ErrFeedTimeout; afterwards every store change
	// replaces the cached list wholesale and is delivered to onUpdate. The
	// caller owns the returned unsubscribe function.
	Subscribe(ctx context.Context, onUpdate func([]models.Appointment), onError func(error)) (func(), error)
	// Add submits a new appointment to the store and returns the canonical
	// store-assigned id. Availability is NOT re-checked here; callers are
	// expected to consult IsSlotAvailable first.
	Add(ctx context.Context, appt models.Appointment) (string, error)
	// Remove deletes the appointment with the given id from the store.
	Remove(ctx context.Context, id string) error
	// IsSlotAvailable reports whether [start, start+duration) is free of
	// overlap with every cached appointment. Pure over the current snapshot.
	IsSlotAvailable(start time.Time, duration time.Duration) bool
	// DaySlots generates the half-hour candidate grid for a service on a day.
	DaySlots(day time.Time, svc models.Service, now time.Time) []models.TimeSlot
	// Snapshot returns a copy of the cached appointment list.
	Snapshot() []models.Appointment
}

// DefaultScheduleService is the production implementation backed by the
// appointments collection of the external document store.
type DefaultScheduleService struct {
	Repo        appointmentRepo.AppointmentRepository
	Catalog     models.Catalog
	SeedOnEmpty bool
	SeedFlag    SeedFlag
	FeedTimeout time.Duration

	mu     sync.RWMutex
	appts  []models.Appointment
	seeded bool
}

// DefaultFeedTimeout bounds the wait for the first snapshot from the feed.
const DefaultFeedTimeout = 8 * time.Second

func (s *DefaultScheduleService) feedTimeout() time.Duration {
	if s.FeedTimeout > 0 {
		return s.FeedTimeout
	}
	return DefaultFeedTimeout
}

func (s *DefaultScheduleService) catalog() models.Catalog {
	if s.Catalog != nil {
		return s.Catalog
	}
	return models.DefaultCatalog()
}

// replace swaps the cached list wholesale. Last update wins; there is no
// incremental merge or conflict resolution.
func (s *DefaultScheduleService) replace(appts []models.Appointment) {
	s.mu.Lock()
	s.appts = appts
	s.mu.Unlock()
}

// Snapshot returns a copy of the cached appointment list.
func (s *DefaultScheduleService) Snapshot() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appts))
	copy(out, s.appts)
	return out
}

// Add submits a new appointment to the external store. The store assigns the
// canonical id; any caller-supplied id is discarded. There is a window between
// a caller's availability check and this write during which another client can
// book the same interval. That race is an accepted limitation: both writes
// land and both appointments display.
func (s *DefaultScheduleService) Add(ctx context.Context, appt models.Appointment) (string, error) {
	appt.ID = ""
	return s.Repo.Create(ctx, &appt)
}

// Remove deletes the appointment with the given id. A missing id surfaces
// appointmentRepo.ErrNotFound and leaves the store unchanged.
func (s *DefaultScheduleService) Remove(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
