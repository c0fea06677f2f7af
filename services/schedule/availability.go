package schedule

import (
	"time"

	"salonbook/models"
)

// Business hours: candidate slots are generated half-hour aligned between the
// opening and closing hour, regardless of service duration.
const (
	OpenHour  = 9
	CloseHour = 20
	SlotStep  = 30 * time.Minute
)

// overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. A candidate starting exactly when another booking
// ends does not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IsSlotAvailable returns false iff [start, start+duration) overlaps the
// resolved interval of any cached appointment. Existing durations come from
// the service catalogue, falling back to models.FallbackDuration when the
// referenced service is unknown. The check is pure over the current snapshot
// and does not consult the external store.
func (s *DefaultScheduleService) IsSlotAvailable(start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	catalog := s.catalog()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, appt := range s.appts {
		existingEnd := appt.Date.Add(catalog.ResolveDuration(appt.ServiceID))
		if overlaps(start, end, appt.Date, existingEnd) {
			return false
		}
	}
	return true
}

// DaySlots generates the candidate grid for the given service on the given
// day: half-hour starts from OpenHour up to (not including) CloseHour. A slot
// is unavailable when the availability check fails or when it is already in
// the past relative to now. The past check only matters for today; fully past
// days are rejected before slot generation.
//
// Slots are independently evaluated at half-hour granularity even for longer
// services, so two adjacent slots can disagree about a booked interval; that
// is accepted behavior.
func (s *DefaultScheduleService) DaySlots(day time.Time, svc models.Service, now time.Time) []models.TimeSlot {
	open := time.Date(day.Year(), day.Month(), day.Day(), OpenHour, 0, 0, 0, day.Location())
	close := time.Date(day.Year(), day.Month(), day.Day(), CloseHour, 0, 0, 0, day.Location())

	var slots []models.TimeSlot
	for t := open; t.Before(close); t = t.Add(SlotStep) {
		available := !t.Before(now) && s.IsSlotAvailable(t, svc.DurationTime())
		slots = append(slots, models.TimeSlot{
			Time:      t.Format("15:04"),
			Available: available,
		})
	}
	return slots
}
