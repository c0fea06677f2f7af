package booking

import (
	"sort"

	"salonbook/models"
)

// AdminAppointment is an appointment with its catalogue data resolved for the
// dashboard. Deleted services show the placeholder name and keep the 30-minute
// fallback duration.
type AdminAppointment struct {
	models.Appointment
	ServiceName string  `json:"serviceName"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price,omitempty"`
}

// DayGroup is one dashboard section: all appointments sharing a calendar day.
type DayGroup struct {
	Day          string             `json:"day"` // YYYY-MM-DD
	Appointments []AdminAppointment `json:"appointments"`
}

// ListAllGrouped returns every appointment grouped by day, newest day first,
// appointments within a day ordered by start time.
func (s *DefaultBookingService) ListAllGrouped() []DayGroup {
	catalog := s.catalog()
	byDay := make(map[string][]AdminAppointment)
	for _, appt := range s.Schedule.Snapshot() {
		entry := AdminAppointment{
			Appointment: appt,
			ServiceName: catalog.ServiceName(appt.ServiceID),
			Duration:    int(catalog.ResolveDuration(appt.ServiceID).Minutes()),
		}
		if svc, ok := catalog.Lookup(appt.ServiceID); ok {
			entry.Price = svc.Price
		}
		day := appt.Date.Format("2006-01-02")
		byDay[day] = append(byDay[day], entry)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for day, appts := range byDay {
		sort.Slice(appts, func(i, j int) bool { return appts[i].Date.Before(appts[j].Date) })
		groups = append(groups, DayGroup{Day: day, Appointments: appts})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Day > groups[j].Day })
	return groups
}

func sortByDate(appts []models.Appointment, ascending bool) {
	sort.Slice(appts, func(i, j int) bool {
		if ascending {
			return appts[i].Date.Before(appts[j].Date)
		}
		return appts[i].Date.After(appts[j].Date)
	})
}
