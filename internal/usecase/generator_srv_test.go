package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGeneratorFixture(now time.Time) (*generatorService, *fakeMovieRepo, *fakeRoomRepo, *fakeScreeningRepo, *fakeRunLock) {
	repo, movies, rooms, screenings := newTestRepo()
	log := zap.NewNop()
	runLock := &fakeRunLock{}
	config := &utils.Config{
		Generator: utils.GeneratorConfig{DefaultLanguage: "English"},
	}
	availability := NewAvailabilityService(repo, log)
	svc := NewGeneratorService(repo, availability, runLock, firstPicker{}, config, log).(*generatorService)
	svc.now = func() time.Time { return now }
	return svc, movies, rooms, screenings, runLock
}

func assertNoOverlaps(t *testing.T, slots []*entity.RoomSlot) {
	t.Helper()
	for i, a := range slots {
		for j, b := range slots {
			if i == j {
				continue
			}
			overlap := a.StartTime.Before(b.End()) && a.End().After(b.StartTime)
			assert.False(t, overlap, "slots %s and %s overlap", a.StartTime, b.StartTime)
		}
	}
}

func TestGenerateWeeklySchedule_FillsWeek(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}

	older := newTestMovie("Back Catalog", 80, timePtr(time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)))
	recent := newTestMovie("New Release", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)))
	movies.eligible = []*entity.Movie{older, recent}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	// two screenings per day over the 7-day horizon
	assert.Len(t, screenings.screenings, 14)

	slots := screenings.slots[room.ID]
	require.NotEmpty(t, slots)

	// the recent release wins the 13:00 opener despite listing order; the
	// older movie follows once the first occupied interval ends
	assert.Equal(t, recent.ID, slots[0].MovieID)
	assert.Equal(t, time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, older.ID, slots[1].MovieID)
	assert.Equal(t, time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC), slots[1].StartTime)

	assertNoOverlaps(t, slots)
}

func TestGenerateWeeklySchedule_RecencyJudgedAtRunStart(t *testing.T) {
	// The clock drifts far forward after the run begins; the recency window
	// must still be anchored to the run's start instant for every slot.
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(base)

	calls := 0
	svc.now = func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.AddDate(0, 0, 30)
	}

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}

	older := newTestMovie("Back Catalog", 80, timePtr(time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)))
	recent := newTestMovie("New Release", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)))
	movies.eligible = []*entity.Movie{older, recent}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	// the recent release keeps the 13:00 opener on every day of the horizon
	for _, slot := range screenings.slots[room.ID] {
		if slot.StartTime.Hour() == 13 {
			assert.Equal(t, recent.ID, slot.MovieID, "opener on %s", slot.StartTime.Format("2006-01-02"))
		}
	}
}

func TestGenerateWeeklySchedule_RespectsExistingScreenings(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}
	movies.eligible = []*entity.Movie{
		newTestMovie("Feature", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	// manual screening blocks 13:00-15:20 on day one
	screenings.addSlot(room.ID, time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC), 120)

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	slots := screenings.slots[room.ID]
	// cursor steps past the blocked opener in half-hour increments
	assert.Equal(t, time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC), slots[1].StartTime)
	assertNoOverlaps(t, slots)
}

func TestGenerateWeeklySchedule_DailyCapCoversEarlierRuns(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}
	feature := newTestMovie("Feature", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)))
	movies.eligible = []*entity.Movie{feature}

	// a screening of the same movie already sits in this room today
	screenings.addSlotFor(room.ID, feature.ID, time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC), 100)

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	// day one gains nothing; only the remaining six days are filled
	assert.Len(t, screenings.screenings, 6)
	perDay := make(map[string]int)
	for _, slot := range screenings.slots[room.ID] {
		if slot.MovieID == feature.ID {
			perDay[slot.StartTime.Format("2006-01-02")]++
		}
	}
	for day, count := range perDay {
		assert.LessOrEqual(t, count, 1, "movie placed %d times in the same room on %s", count, day)
	}
}

func TestGenerateWeeklySchedule_RerunAddsNothing(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	movies.eligible = []*entity.Movie{
		newTestMovie("Feature", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))
	assert.Len(t, screenings.screenings, 7)

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))
	assert.Len(t, screenings.screenings, 7)
}

func TestGenerateWeeklySchedule_OneScreeningPerMoviePerRoomDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	movies.eligible = []*entity.Movie{
		newTestMovie("Only One", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	// one slot per day even though the rest of each day stays open
	assert.Len(t, screenings.screenings, 7)
}

func TestGenerateWeeklySchedule_NeverCrossesMidnight(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	// 700 min runtime plus buffer runs past midnight from any 13:00+ start
	movies.eligible = []*entity.Movie{
		newTestMovie("Marathon", 700, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	assert.Empty(t, screenings.screenings)
}

func TestGenerateWeeklySchedule_OccupiedUntilEndOfDayFits(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	// 639 min runtime + 20 min buffer from 13:00 occupies until exactly 23:59
	movies.eligible = []*entity.Movie{
		newTestMovie("Epic", 639, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	assert.Len(t, screenings.screenings, 7)
}

func TestGenerateWeeklySchedule_NeverBackdates(t *testing.T) {
	// run started mid-evening: today's first slot rounds up to the next half
	// hour instead of 13:00
	now := time.Date(2026, 9, 1, 20, 10, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}
	movies.eligible = []*entity.Movie{
		newTestMovie("Late Show", 90, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	slots := screenings.slots[room.ID]
	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2026, 9, 1, 20, 30, 0, 0, time.UTC), slots[0].StartTime)
	for _, slot := range slots {
		assert.False(t, slot.StartTime.Before(now), "slot %s is in the past", slot.StartTime)
	}
}

func TestGenerateWeeklySchedule_NoEligibleMovies(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, _, rooms, screenings, runLock := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	assert.Empty(t, screenings.screenings)
	assert.Equal(t, 1, runLock.releases)
}

func TestGenerateWeeklySchedule_LockAlreadyHeld(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, runLock := newGeneratorFixture(now)

	runLock.held = true
	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	movies.eligible = []*entity.Movie{
		newTestMovie("Feature", 90, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	err := svc.GenerateWeeklySchedule(context.Background())

	assert.ErrorIs(t, err, ErrGenerationInProgress)
	assert.Empty(t, screenings.screenings)
	assert.Zero(t, runLock.releases)
}

func TestGenerateWeeklySchedule_ReleasesLockAfterRun(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, _, runLock := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	movies.eligible = []*entity.Movie{
		newTestMovie("Feature", 90, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	assert.False(t, runLock.held)
	assert.Equal(t, 1, runLock.releases)
}

func TestGenerateWeeklySchedule_SlotWriteFailureIsRecoverable(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, _ := newGeneratorFixture(now)

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}
	movies.eligible = []*entity.Movie{
		newTestMovie("Feature", 90, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	screenings.failNext = 1

	require.NoError(t, svc.GenerateWeeklySchedule(context.Background()))

	// the first write was rejected, the retry half an hour later stuck
	slots := screenings.slots[room.ID]
	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2026, 9, 1, 13, 30, 0, 0, time.UTC), slots[0].StartTime)
	assert.Len(t, screenings.screenings, 7)
}

func TestRunDaily_StopsOnContextCancel(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	svc, movies, rooms, screenings, runLock := newGeneratorFixture(now)

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 10)}
	movies.eligible = []*entity.Movie{
		newTestMovie("Feature", 90, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the initial run still fires before the cancelled context is observed
	svc.RunDaily(ctx, time.Hour)

	assert.Equal(t, 1, runLock.acquires)
	assert.NotEmpty(t, screenings.screenings)
}
