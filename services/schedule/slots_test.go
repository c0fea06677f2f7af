package schedule

import (
	"testing"
	"time"

	"salonbook/models"
)

func mustLookup(t *testing.T, id string) models.Service {
	t.Helper()
	svc, ok := models.DefaultCatalog().Lookup(id)
	if !ok {
		t.Fatalf("service %s missing from catalogue", id)
	}
	return svc
}

func TestDaySlotsWindow(t *testing.T) {
	s := newTestService()
	svc := mustLookup(t, "2") // 30 min

	// now well before opening so nothing is marked past
	slots := s.DaySlots(day(0, 0), svc, day(0, 0))

	wantCount := (CloseHour - OpenHour) * 2
	if len(slots) != wantCount {
		t.Fatalf("got %d slots, want %d", len(slots), wantCount)
	}
	if slots[0].Time != "09:00" {
		t.Errorf("first slot = %s, want 09:00", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "19:30" {
		t.Errorf("last slot = %s, want 19:30", slots[len(slots)-1].Time)
	}
	for _, sl := range slots {
		if !sl.Available {
			t.Errorf("slot %s should be available on an empty day", sl.Time)
		}
	}
}

func TestDaySlotsMarkPastSlotsToday(t *testing.T) {
	s := newTestService()
	svc := mustLookup(t, "2")

	now := day(12, 15)
	slots := s.DaySlots(day(0, 0), svc, now)

	for _, sl := range slots {
		st, _ := time.ParseInLocation("15:04", sl.Time, time.Local)
		past := st.Hour()*60+st.Minute() < 12*60+15
		if past && sl.Available {
			t.Errorf("slot %s is in the past and must be unavailable", sl.Time)
		}
		if !past && !sl.Available {
			t.Errorf("slot %s is in the future and must be available", sl.Time)
		}
	}
}

func TestDaySlotsHalfHourGranularityIndependent(t *testing.T) {
	// A 90-minute booking at 14:00 (14:00-15:30). The grid stays half-hour
	// granular; each candidate is evaluated independently.
	s := newTestService(models.Appointment{ID: "a", Date: day(14, 0), ServiceID: "3"})
	svc := mustLookup(t, "2") // 30-min service

	slots := s.DaySlots(day(0, 0), svc, day(0, 0))
	byTime := map[string]bool{}
	for _, sl := range slots {
		byTime[sl.Time] = sl.Available
	}

	cases := map[string]bool{
		"13:30": true,  // ends exactly at 14:00
		"14:00": false, // inside booked interval
		"14:30": false,
		"15:00": false,
		"15:30": true, // starts exactly at booked end
	}
	for at, want := range cases {
		if got, ok := byTime[at]; !ok || got != want {
			t.Errorf("slot %s available = %v, want %v", at, got, want)
		}
	}
}

func TestDaySlotsLongServiceNearClosing(t *testing.T) {
	// The grid offers half-hour starts up to closing regardless of service
	// duration; a 120-minute service still lists 19:30 as a candidate.
	s := newTestService()
	svc := mustLookup(t, "4") // 120 min

	slots := s.DaySlots(day(0, 0), svc, day(0, 0))
	if got := slots[len(slots)-1].Time; got != "19:30" {
		t.Errorf("last candidate = %s, want 19:30", got)
	}
}
