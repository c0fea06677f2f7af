package schedule

import (
	"context"
	"errors"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrFeedTimeout is returned when the live feed delivers no data within the
// bounded wait window.
var ErrFeedTimeout = errors.New("live feed timed out waiting for initial data")

// SeedFlag remembers across restarts that the store has been seeded once.
type SeedFlag interface {
	IsSet(ctx context.Context) bool
	Set(ctx context.Context)
}

// RedisSeedFlag stores the seed marker in Redis.
type RedisSeedFlag struct {
	Client *redis.Client
}

func (f *RedisSeedFlag) IsSet(ctx context.Context) bool {
	v, err := f.Client.Get(ctx, utils.SeedFlagKey).Result()
	return err == nil && v == "true"
}

func (f *RedisSeedFlag) Set(ctx context.Context) {
	if err := f.Client.Set(ctx, utils.SeedFlagKey, "true", 0).Err(); err != nil {
		utils.GetLogger().Warn("failed to persist seed flag", zap.Error(err))
	}
}

// Subscribe performs the bounded initial load, seeds an empty store once, and
// opens the change feed. Every feed event reloads the whole collection and
// replaces the cached list. The store is the sole source of truth; no local
// optimistic state survives a snapshot.
func (s *DefaultScheduleService) Subscribe(ctx context.Context, onUpdate func([]models.Appointment), onError func(error)) (func(), error) {
	logger := utils.GetLogger()

	appts, err := s.initialLoad(ctx)
	if err != nil {
		return nil, err
	}

	if len(appts) == 0 && s.SeedOnEmpty && !s.alreadySeeded(ctx) {
		logger.Info("appointments collection empty, seeding sample data")
		appts = s.seed(ctx)
	}

	s.replace(appts)
	onUpdate(s.Snapshot())

	stop, err := s.Repo.Watch(ctx, func() {
		s.refresh(ctx, onUpdate, onError)
	}, onError)
	if err != nil {
		return nil, err
	}

	return stop, nil
}

// initialLoad fetches the first snapshot under the feed timeout so a hanging
// store surfaces an error instead of an indefinite wait.
func (s *DefaultScheduleService) initialLoad(ctx context.Context) ([]models.Appointment, error) {
	loadCtx, cancel := context.WithTimeout(ctx, s.feedTimeout())
	defer cancel()

	appts, err := s.Repo.GetAll(loadCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrFeedTimeout
		}
		return nil, err
	}
	return appts, nil
}

// refresh reloads the whole collection after a feed event.
func (s *DefaultScheduleService) refresh(ctx context.Context, onUpdate func([]models.Appointment), onError func(error)) {
	appts, err := s.Repo.GetAll(ctx)
	if err != nil {
		onError(err)
		return
	}
	s.replace(appts)
	onUpdate(s.Snapshot())
}

func (s *DefaultScheduleService) alreadySeeded(ctx context.Context) bool {
	s.mu.RLock()
	seeded := s.seeded
	s.mu.RUnlock()
	if seeded {
		return true
	}
	if s.SeedFlag != nil && s.SeedFlag.IsSet(ctx) {
		return true
	}
	return false
}

// seed inserts the sample appointments and returns the seeded list with the
// store-assigned ids. Individual insert failures are logged and skipped.
func (s *DefaultScheduleService) seed(ctx context.Context) []models.Appointment {
	logger := utils.GetLogger()

	var seeded []models.Appointment
	for _, appt := range models.SeedAppointments(time.Now()) {
		id, err := s.Repo.Create(ctx, &appt)
		if err != nil {
			logger.Error("failed to seed appointment", zap.Error(err))
			continue
		}
		appt.ID = id
		seeded = append(seeded, appt)
	}

	s.mu.Lock()
	s.seeded = true
	s.mu.Unlock()
	if s.SeedFlag != nil {
		s.SeedFlag.Set(ctx)
	}
	return seeded
}
