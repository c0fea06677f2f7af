package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/models"
)

// fakeRepo is an in-memory stand-in for the document store. Writes invoke the
// registered change callback synchronously so tests observe the snapshot
// reload the way the live feed delivers it.
type fakeRepo struct {
	mu       sync.Mutex
	appts    map[string]models.Appointment
	nextID   int
	hang     bool // GetAll blocks until the context is done
	onChange func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[string]models.Appointment)}
}

func (r *fakeRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	if r.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeRepo) Create(ctx context.Context, appt *models.Appointment) (string, error) {
	r.mu.Lock()
	r.nextID++
	id := fmt.Sprintf("appt-%d", r.nextID)
	appt.ID = id
	r.appts[id] = *appt
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return id, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	_, ok := r.appts[id]
	if ok {
		delete(r.appts, id)
	}
	onChange := r.onChange
	r.mu.Unlock()

	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if onChange != nil {
		onChange()
	}
	return nil
}

func (r *fakeRepo) Watch(ctx context.Context, onChange func(), onError func(error)) (func(), error) {
	r.mu.Lock()
	r.onChange = onChange
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.onChange = nil
		r.mu.Unlock()
	}, nil
}

func subscribe(t *testing.T, s *DefaultScheduleService) func() {
	t.Helper()
	stop, err := s.Subscribe(context.Background(),
		func([]models.Appointment) {},
		func(err error) { t.Errorf("unexpected feed error: %v", err) })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	return stop
}

func TestSubscribeTimesOutWhenFeedNeverResponds(t *testing.T) {
	repo := newFakeRepo()
	repo.hang = true
	s := &DefaultScheduleService{Repo: repo, FeedTimeout: 50 * time.Millisecond}

	_, err := s.Subscribe(context.Background(),
		func([]models.Appointment) {},
		func(error) {})
	if !errors.Is(err, ErrFeedTimeout) {
		t.Fatalf("Subscribe error = %v, want ErrFeedTimeout", err)
	}
}

func TestSubscribeSeedsEmptyStore(t *testing.T) {
	repo := newFakeRepo()
	s := &DefaultScheduleService{Repo: repo, SeedOnEmpty: true}

	var got []models.Appointment
	stop, err := s.Subscribe(context.Background(),
		func(appts []models.Appointment) { got = appts },
		func(err error) { t.Errorf("unexpected feed error: %v", err) })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer stop()

	if len(got) != 2 {
		t.Fatalf("seeded %d appointments, want 2", len(got))
	}
	for _, a := range got {
		if a.ID == "" {
			t.Error("seeded appointment missing store-assigned id")
		}
	}
}

func TestSubscribeDoesNotSeedTwice(t *testing.T) {
	repo := newFakeRepo()
	s := &DefaultScheduleService{Repo: repo, SeedOnEmpty: true}

	stop := subscribe(t, s)
	stop()

	// Empty the store and subscribe again on the same service instance: the
	// in-memory guard must prevent a second seeding.
	repo.mu.Lock()
	repo.appts = map[string]models.Appointment{}
	repo.mu.Unlock()

	stop = subscribe(t, s)
	defer stop()
	if n := len(s.Snapshot()); n != 0 {
		t.Fatalf("store reseeded with %d appointments, want 0", n)
	}
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	s := &DefaultScheduleService{Repo: repo}
	stop := subscribe(t, s)
	defer stop()

	start := day(10, 0)
	appt := models.Appointment{
		ID:           "client-chosen-id", // must be discarded
		Date:         start,
		ServiceID:    "1", // 45 min
		CustomerName: "Maria García",
	}

	if !s.IsSlotAvailable(start, 45*time.Minute) {
		t.Fatal("slot should be available before booking")
	}

	id, err := s.Add(context.Background(), appt)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "client-chosen-id" {
		t.Error("client-supplied id must be discarded in favor of the store's")
	}

	// The feed event already replaced the snapshot; the exact interval is
	// now taken.
	if s.IsSlotAvailable(start, 45*time.Minute) {
		t.Error("slot must be unavailable after the snapshot refresh")
	}

	if err := s.Remove(context.Background(), id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !s.IsSlotAvailable(start, 45*time.Minute) {
		t.Error("slot must be available again after cancellation")
	}
}

func TestRemoveUnknownIDLeavesStoreUnchanged(t *testing.T) {
	repo := newFakeRepo()
	s := &DefaultScheduleService{Repo: repo}
	stop := subscribe(t, s)
	defer stop()

	if _, err := s.Add(context.Background(), models.Appointment{Date: day(10, 0), ServiceID: "2", CustomerName: "Juan"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	before := len(s.Snapshot())

	err := s.Remove(context.Background(), "no-such-id")
	if !errors.Is(err, appointmentRepo.ErrNotFound) {
		t.Fatalf("Remove error = %v, want ErrNotFound", err)
	}
	if after := len(s.Snapshot()); after != before {
		t.Errorf("snapshot size changed %d -> %d on failed remove", before, after)
	}
}

func TestFeedReplacesSnapshotWholesale(t *testing.T) {
	repo := newFakeRepo()
	s := &DefaultScheduleService{Repo: repo}
	stop := subscribe(t, s)
	defer stop()

	// Another client writes directly to the store; the feed event must
	// replace our cache with the store's view.
	other := models.Appointment{Date: day(16, 30), ServiceID: "2", CustomerName: "Juan Pérez"}
	if _, err := repo.Create(context.Background(), &other); err != nil {
		t.Fatalf("store write failed: %v", err)
	}

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].CustomerName != "Juan Pérez" {
		t.Fatalf("snapshot = %+v, want the store's single appointment", snap)
	}
}
