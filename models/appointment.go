package models

import "time"

// Appointment is a booked visit. The id is assigned by the document store on
// creation; a caller-supplied id is discarded. Appointments are created by the
// booking flow, destroyed by explicit cancellation and never otherwise mutated.
type Appointment struct {
	ID            string    `json:"id" bson:"-"`
	Date          time.Time `json:"date" bson:"date"`
	ServiceID     string    `json:"serviceId" bson:"serviceId"`
	CustomerName  string    `json:"customerName" bson:"customerName"`
	CustomerPhone string    `json:"customerPhone,omitempty" bson:"customerPhone,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty" bson:"customerEmail,omitempty"`
	Message       string    `json:"message,omitempty" bson:"message,omitempty"`
}

// SeedAppointments returns the sample appointments used to populate an empty
// store: two visits today at 10:00 and 16:30.
func SeedAppointments(now time.Time) []Appointment {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return []Appointment{
		{
			Date:         day.Add(10 * time.Hour),
			ServiceID:    "1",
			CustomerName: "Maria García",
		},
		{
			Date:         day.Add(16*time.Hour + 30*time.Minute),
			ServiceID:    "2",
			CustomerName: "Juan Pérez",
		},
	}
}
