package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/internal/data/repository"
	"cinema-ops/pkg/lock"
	"cinema-ops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// scheduleHorizonDays is the rolling window the generator fills, starting
	// today.
	scheduleHorizonDays = 7

	// dayStartHour is the local hour the first slot of every day opens.
	dayStartHour = 13

	// slotRetryStep is how far the cursor advances when a slot cannot be
	// filled.
	slotRetryStep = 30 * time.Minute

	// recentReleaseWindowDays marks movies released within this window as
	// preferred candidates.
	recentReleaseWindowDays = 14

	generationLockKey = "scheduler:generation:lock"
	generationLockTTL = 30 * time.Minute
)

type GeneratorService interface {
	// GenerateWeeklySchedule fills the next 7 days of every room with
	// screenings, best effort. Safe to re-run: already filled slots are
	// skipped. Returns ErrGenerationInProgress when another run holds the
	// lock.
	GenerateWeeklySchedule(ctx context.Context) error

	// RunDaily blocks and triggers a generation run immediately and then on
	// every interval tick, until the context is cancelled.
	RunDaily(ctx context.Context, interval time.Duration)
}

type generatorService struct {
	repo         *repository.Repository
	availability AvailabilityService
	runLock      lock.RunLock
	picker       MoviePicker
	language     string
	now          func() time.Time
	log          *zap.Logger
}

func NewGeneratorService(repo *repository.Repository, availability AvailabilityService, runLock lock.RunLock, picker MoviePicker, config *utils.Config, log *zap.Logger) GeneratorService {
	return &generatorService{
		repo:         repo,
		availability: availability,
		runLock:      runLock,
		picker:       picker,
		language:     config.Generator.DefaultLanguage,
		now:          time.Now,
		log:          log.With(zap.String("service", "generator")),
	}
}

func (s *generatorService) GenerateWeeklySchedule(ctx context.Context) error {
	acquired, err := s.runLock.Acquire(ctx, generationLockKey, generationLockTTL)
	if err != nil {
		return fmt.Errorf("acquire generation lock: %w", err)
	}
	if !acquired {
		return ErrGenerationInProgress
	}
	defer func() {
		if err := s.runLock.Release(context.WithoutCancel(ctx), generationLockKey); err != nil {
			s.log.Warn("Failed to release generation lock", zap.Error(err))
		}
	}()

	// Failing to read catalogs up front aborts the whole run; everything
	// inside the room/day loops is recoverable per slot.
	movies, err := s.repo.Movie.FindEligible(ctx)
	if err != nil {
		return fmt.Errorf("load eligible movies: %w", err)
	}
	if len(movies) == 0 {
		s.log.Info("No eligible movies, skipping schedule generation")
		return nil
	}

	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}

	now := s.now()
	var created, skipped int
	for _, room := range rooms {
		for day := 0; day < scheduleHorizonDays; day++ {
			c, sk := s.fillRoomDay(ctx, room, movies, now, day)
			created += c
			skipped += sk
		}
	}

	s.log.Info("Weekly schedule generated",
		zap.Int("rooms", len(rooms)),
		zap.Int("eligible_movies", len(movies)),
		zap.Int("screenings_created", created),
		zap.Int("slots_skipped", skipped),
	)

	return nil
}

// slotCursor walks one room-day. It advances either by the retry step when a
// slot stays empty or by the occupied interval of a screening it placed, and
// stops at the day boundary.
type slotCursor struct {
	at       time.Time
	lastEnd  time.Time // 23:59 of the day; no occupied interval may pass it
	midnight time.Time
}

func newSlotCursor(now time.Time, dayOffset int) slotCursor {
	day := now.AddDate(0, 0, dayOffset)
	start := time.Date(day.Year(), day.Month(), day.Day(), dayStartHour, 0, 0, 0, day.Location())

	// never backdate: today's cursor begins at the next half hour from now
	for start.Before(now) {
		start = start.Add(slotRetryStep)
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).AddDate(0, 0, 1)

	return slotCursor{
		at:       start,
		lastEnd:  midnight.Add(-time.Minute),
		midnight: midnight,
	}
}

func (c *slotCursor) exhausted() bool {
	return !c.at.Before(c.midnight)
}

func (c *slotCursor) retry() {
	c.at = c.at.Add(slotRetryStep)
}

func (c *slotCursor) jumpTo(t time.Time) {
	c.at = t
}

func (c *slotCursor) fits(end time.Time) bool {
	return !end.After(c.lastEnd)
}

func (s *generatorService) fillRoomDay(ctx context.Context, room *entity.Room, movies []*entity.Movie, now time.Time, dayOffset int) (created, skipped int) {
	cursor := newSlotCursor(now, dayOffset)

	// The per-day cap covers screenings from earlier runs too, so the map
	// starts from what the store already holds for this room-day.
	scheduled, err := s.moviesScheduledInDay(ctx, room.ID, cursor.midnight.AddDate(0, 0, -1), cursor.midnight)
	if err != nil {
		s.log.Warn("Failed to load existing screenings for day",
			zap.Error(err),
			zap.Int("room_number", room.RoomNumber),
			zap.Int("day_offset", dayOffset),
		)
		return 0, 0
	}

	for !cursor.exhausted() {
		movie, err := s.pickCandidate(ctx, room, cursor.at, movies, scheduled, now)
		if err != nil {
			s.log.Warn("Candidate scan failed",
				zap.Error(err),
				zap.Int("room_number", room.RoomNumber),
				zap.Time("slot", cursor.at),
			)
			cursor.retry()
			skipped++
			continue
		}
		if movie == nil {
			cursor.retry()
			skipped++
			continue
		}

		end := cursor.at.Add(occupiedDuration(movie.DurationInMinutes))
		if !cursor.fits(end) {
			// occupied interval would cross midnight, the day is over
			break
		}

		// State may have moved since the candidate scan; verify again before
		// writing.
		free, err := s.availability.IsRoomFree(ctx, room.ID, cursor.at, movie.DurationInMinutes)
		if err != nil || !free {
			cursor.retry()
			skipped++
			continue
		}

		screening := &entity.Screening{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			MovieID:   movie.ID,
			RoomID:    room.ID,
			StartTime: cursor.at,
			Language:  s.language,
			Status:    entity.ScreeningStatusActive,
		}

		if err := s.repo.Screening.CreateIfRoomFree(ctx, screening, movie.DurationInMinutes); err != nil {
			// a single failed slot never aborts the run
			s.log.Warn("Slot write failed",
				zap.Error(err),
				zap.Int("room_number", room.RoomNumber),
				zap.Time("slot", cursor.at),
			)
			cursor.retry()
			skipped++
			continue
		}

		scheduled[movie.ID] = true
		created++
		cursor.jumpTo(end)
	}

	return created, skipped
}

// moviesScheduledInDay returns the movies that already have an active
// screening in the room starting within [dayStart, dayEnd).
func (s *generatorService) moviesScheduledInDay(ctx context.Context, roomID uuid.UUID, dayStart, dayEnd time.Time) (map[uuid.UUID]bool, error) {
	slots, err := s.repo.Screening.FindActiveSlotsByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("load slots for room %s: %w", roomID.String(), err)
	}

	scheduled := make(map[uuid.UUID]bool)
	for _, slot := range slots {
		if !slot.StartTime.Before(dayStart) && slot.StartTime.Before(dayEnd) {
			scheduled[slot.MovieID] = true
		}
	}
	return scheduled, nil
}

// pickCandidate filters the eligible movies down to those that can start in
// this room at this time, then prefers recent releases when any qualify. The
// recency cutoff is judged against the run's start instant.
func (s *generatorService) pickCandidate(ctx context.Context, room *entity.Room, at time.Time, movies []*entity.Movie, scheduled map[uuid.UUID]bool, now time.Time) (*entity.Movie, error) {
	var candidates []*entity.Movie
	for _, movie := range movies {
		if scheduled[movie.ID] {
			continue
		}
		free, err := s.availability.IsRoomFree(ctx, room.ID, at, movie.DurationInMinutes)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}
		candidates = append(candidates, movie)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	cutoff := now.AddDate(0, 0, -recentReleaseWindowDays)
	var recent []*entity.Movie
	for _, movie := range candidates {
		if movie.ReleaseDate == nil {
			continue
		}
		if !movie.ReleaseDate.Before(cutoff) && !movie.ReleaseDate.After(now) {
			recent = append(recent, movie)
		}
	}

	if len(recent) > 0 {
		return s.picker.Pick(recent), nil
	}
	return s.picker.Pick(candidates), nil
}

func occupiedDuration(runtimeMinutes int) time.Duration {
	return time.Duration(runtimeMinutes+entity.CleanupBufferMinutes) * time.Minute
}

func (s *generatorService) RunDaily(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Schedule generator started", zap.Duration("interval", interval))

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Schedule generator stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *generatorService) runOnce(ctx context.Context) {
	if err := s.GenerateWeeklySchedule(ctx); err != nil {
		s.log.Error("Schedule generation run failed", zap.Error(err))
	}
}
