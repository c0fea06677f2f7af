package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/models"
	"salonbook/services/email"
)

// fakeSchedule keeps appointments in memory and answers availability with the
// same half-open interval rule the real cache applies.
type fakeSchedule struct {
	appts  map[string]models.Appointment
	nextID int
}

func newFakeSchedule(appts ...models.Appointment) *fakeSchedule {
	f := &fakeSchedule{appts: make(map[string]models.Appointment)}
	for _, a := range appts {
		f.appts[a.ID] = a
	}
	return f
}

func (f *fakeSchedule) Subscribe(ctx context.Context, onUpdate func([]models.Appointment), onError func(error)) (func(), error) {
	return func() {}, nil
}

func (f *fakeSchedule) Add(ctx context.Context, appt models.Appointment) (string, error) {
	f.nextID++
	id := fmt.Sprintf("appt-%d", f.nextID)
	appt.ID = id
	f.appts[id] = appt
	return id, nil
}

func (f *fakeSchedule) Remove(ctx context.Context, id string) error {
	if _, ok := f.appts[id]; !ok {
		return appointmentRepo.ErrNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeSchedule) IsSlotAvailable(start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	catalog := models.DefaultCatalog()
	for _, a := range f.appts {
		aEnd := a.Date.Add(catalog.ResolveDuration(a.ServiceID))
		if start.Before(aEnd) && a.Date.Before(end) {
			return false
		}
	}
	return true
}

func (f *fakeSchedule) DaySlots(day time.Time, svc models.Service, now time.Time) []models.TimeSlot {
	return nil
}

func (f *fakeSchedule) Snapshot() []models.Appointment {
	out := make([]models.Appointment, 0, len(f.appts))
	for _, a := range f.appts {
		out = append(out, a)
	}
	return out
}

type fakeEmail struct {
	bookings []email.BookingEmail
	fail     bool
}

func (f *fakeEmail) SendBookingConfirmation(ctx context.Context, b email.BookingEmail) error {
	if f.fail {
		return errors.New("relay down")
	}
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeEmail) SendVerificationCode(ctx context.Context, emailAddr, code string) error {
	return nil
}

func (f *fakeEmail) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	return nil
}

func at(h, m int) time.Time {
	return time.Date(2026, time.March, 10, h, m, 0, 0, time.Local)
}

func newBookingService(sched *fakeSchedule, mail *fakeEmail) *DefaultBookingService {
	return &DefaultBookingService{Schedule: sched, Email: mail}
}

func TestCreateBookingSuccess(t *testing.T) {
	sched := newFakeSchedule()
	mail := &fakeEmail{}
	svc := newBookingService(sched, mail)
	session := &models.Session{UID: "u1", Email: "maria@example.com"}

	appt, err := svc.CreateBooking(context.Background(), BookingRequest{
		ServiceID:    "1",
		Date:         at(10, 0),
		CustomerName: "Maria García",
	}, session)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if appt.ID == "" {
		t.Error("appointment must carry the store-assigned id")
	}
	if appt.CustomerEmail != "maria@example.com" {
		t.Errorf("customer email = %q, want the session email", appt.CustomerEmail)
	}

	if len(mail.bookings) != 1 {
		t.Fatalf("confirmation emails sent = %d, want 1", len(mail.bookings))
	}
	sent := mail.bookings[0]
	if sent.ServiceName != "Corte de Pelo Mujer" || sent.Price != 25 || sent.Duration != 45 {
		t.Errorf("confirmation = %+v, want resolved catalogue data", sent)
	}
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	// Existing 90-minute appointment at 14:00 occupies 14:00-15:30.
	sched := newFakeSchedule(models.Appointment{ID: "a", Date: at(14, 0), ServiceID: "3"})
	mail := &fakeEmail{}
	svc := newBookingService(sched, mail)

	_, err := svc.CreateBooking(context.Background(), BookingRequest{
		ServiceID:    "2",
		Date:         at(14, 30),
		CustomerName: "Juan",
	}, &models.Session{Email: "juan@example.com"})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
	if len(sched.appts) != 1 {
		t.Error("rejected booking must not reach the store")
	}
	if len(mail.bookings) != 0 {
		t.Error("rejected booking must not send email")
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	svc := newBookingService(newFakeSchedule(), &fakeEmail{})

	_, err := svc.CreateBooking(context.Background(), BookingRequest{
		ServiceID: "99",
		Date:      at(10, 0),
	}, &models.Session{Email: "x@example.com"})
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("err = %v, want ErrUnknownService", err)
	}
}

func TestEmailFailureDoesNotFailBooking(t *testing.T) {
	sched := newFakeSchedule()
	svc := newBookingService(sched, &fakeEmail{fail: true})

	appt, err := svc.CreateBooking(context.Background(), BookingRequest{
		ServiceID:    "2",
		Date:         at(11, 0),
		CustomerName: "Juan",
	}, &models.Session{Email: "juan@example.com"})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if _, ok := sched.appts[appt.ID]; !ok {
		t.Error("appointment must be stored despite the email failure")
	}
}

func TestCancelOwnership(t *testing.T) {
	appt := models.Appointment{ID: "a1", Date: at(10, 0), ServiceID: "1", CustomerEmail: "maria@example.com"}

	t.Run("owner cancels", func(t *testing.T) {
		sched := newFakeSchedule(appt)
		svc := newBookingService(sched, &fakeEmail{})
		if _, err := svc.CancelBooking(context.Background(), "a1", Requester{Email: "Maria@Example.com"}); err != nil {
			t.Fatalf("owner cancel failed: %v", err)
		}
		if len(sched.appts) != 0 {
			t.Error("appointment must be removed")
		}
	})

	t.Run("other customer rejected", func(t *testing.T) {
		sched := newFakeSchedule(appt)
		svc := newBookingService(sched, &fakeEmail{})
		if _, err := svc.CancelBooking(context.Background(), "a1", Requester{Email: "juan@example.com"}); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("err = %v, want ErrNotOwner", err)
		}
		if len(sched.appts) != 1 {
			t.Error("appointment must stay when the requester is not the owner")
		}
	})

	t.Run("admin cancels any", func(t *testing.T) {
		sched := newFakeSchedule(appt)
		svc := newBookingService(sched, &fakeEmail{})
		if _, err := svc.CancelBooking(context.Background(), "a1", Requester{Admin: true}); err != nil {
			t.Fatalf("admin cancel failed: %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newBookingService(newFakeSchedule(appt), &fakeEmail{})
		if _, err := svc.CancelBooking(context.Background(), "missing", Requester{Email: "maria@example.com"}); !errors.Is(err, appointmentRepo.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestCancelLateFlag(t *testing.T) {
	soon := time.Now().Add(30 * time.Minute)
	later := time.Now().Add(3 * time.Hour)
	sched := newFakeSchedule(
		models.Appointment{ID: "soon", Date: soon, ServiceID: "1", CustomerEmail: "maria@example.com"},
		models.Appointment{ID: "later", Date: later, ServiceID: "1", CustomerEmail: "maria@example.com"},
	)
	svc := newBookingService(sched, &fakeEmail{})
	requester := Requester{Email: "maria@example.com"}

	late, err := svc.CancelBooking(context.Background(), "soon", requester)
	if err != nil || !late {
		t.Errorf("cancel 30 min out: late=%v err=%v, want late=true", late, err)
	}
	late, err = svc.CancelBooking(context.Background(), "later", requester)
	if err != nil || late {
		t.Errorf("cancel 3 h out: late=%v err=%v, want late=false", late, err)
	}
}

func TestListForUserSplitsAndSorts(t *testing.T) {
	now := at(12, 0)
	sched := newFakeSchedule(
		models.Appointment{ID: "p1", Date: at(9, 0), ServiceID: "2", CustomerEmail: "maria@example.com"},
		models.Appointment{ID: "p2", Date: at(10, 0), ServiceID: "2", CustomerEmail: "maria@example.com"},
		models.Appointment{ID: "f1", Date: at(13, 0), ServiceID: "2", CustomerEmail: "maria@example.com"},
		models.Appointment{ID: "f2", Date: at(16, 0), ServiceID: "2", CustomerEmail: "maria@example.com"},
		models.Appointment{ID: "x", Date: at(15, 0), ServiceID: "2", CustomerEmail: "juan@example.com"},
	)
	svc := newBookingService(sched, &fakeEmail{})

	upcoming, history := svc.ListForUser("maria@example.com", now)
	if len(upcoming) != 2 || upcoming[0].ID != "f1" || upcoming[1].ID != "f2" {
		t.Errorf("upcoming = %+v, want f1 then f2", upcoming)
	}
	if len(history) != 2 || history[0].ID != "p2" || history[1].ID != "p1" {
		t.Errorf("history = %+v, want p2 then p1", history)
	}
}

func TestListAllGrouped(t *testing.T) {
	d1 := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.Local)
	d2a := time.Date(2026, time.March, 10, 16, 30, 0, 0, time.Local)
	d2b := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.Local)
	sched := newFakeSchedule(
		models.Appointment{ID: "old", Date: d1, ServiceID: "2"},
		models.Appointment{ID: "b", Date: d2a, ServiceID: "ghost"},
		models.Appointment{ID: "a", Date: d2b, ServiceID: "1"},
	)
	svc := newBookingService(sched, &fakeEmail{})

	groups := svc.ListAllGrouped()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Day != "2026-03-10" || groups[1].Day != "2026-03-09" {
		t.Errorf("group order = %s, %s, want newest day first", groups[0].Day, groups[1].Day)
	}
	day := groups[0].Appointments
	if len(day) != 2 || day[0].ID != "a" || day[1].ID != "b" {
		t.Fatalf("within-day order = %+v, want by start time", day)
	}
	if day[0].ServiceName != "Corte de Pelo Mujer" || day[0].Duration != 45 {
		t.Errorf("resolved service = %+v", day[0])
	}
	if day[1].ServiceName != models.UnknownServiceName || day[1].Duration != 30 {
		t.Errorf("unresolved service = %+v, want placeholder name and fallback duration", day[1])
	}
}
