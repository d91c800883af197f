package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces.

type fakeMovieRepo struct {
	byID        map[uuid.UUID]*entity.Movie
	eligible    []*entity.Movie
	eligibleErr error
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.byID[id], nil
}

func (f *fakeMovieRepo) FindEligible(_ context.Context) ([]*entity.Movie, error) {
	if f.eligibleErr != nil {
		return nil, f.eligibleErr
	}
	return f.eligible, nil
}

type fakeRoomRepo struct {
	rooms []*entity.Room
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	for _, room := range f.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) FindAll(_ context.Context) ([]*entity.Room, error) {
	out := make([]*entity.Room, len(f.rooms))
	copy(out, f.rooms)
	return out, nil
}

type fakeScreeningRepo struct {
	screenings map[uuid.UUID]*entity.Screening
	slots      map[uuid.UUID][]*entity.RoomSlot
	samples    map[uuid.UUID][]*entity.OccupancySample
	slotsErr   error
	failNext   int // CreateIfRoomFree fails this many times
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{
		screenings: make(map[uuid.UUID]*entity.Screening),
		slots:      make(map[uuid.UUID][]*entity.RoomSlot),
		samples:    make(map[uuid.UUID][]*entity.OccupancySample),
	}
}

func (f *fakeScreeningRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screening, error) {
	return f.screenings[id], nil
}

func (f *fakeScreeningRepo) FindActiveSlotsByRoom(_ context.Context, roomID uuid.UUID) ([]*entity.RoomSlot, error) {
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	out := make([]*entity.RoomSlot, len(f.slots[roomID]))
	copy(out, f.slots[roomID])
	return out, nil
}

func (f *fakeScreeningRepo) OccupancyByMovie(_ context.Context, movieID uuid.UUID) ([]*entity.OccupancySample, error) {
	return f.samples[movieID], nil
}

func (f *fakeScreeningRepo) CreateIfRoomFree(_ context.Context, screening *entity.Screening, runtimeMinutes int) error {
	if f.failNext > 0 {
		f.failNext--
		return fmt.Errorf("room %s: %w", screening.RoomID.String(), repository.ErrRoomUnavailable)
	}

	candidate := &entity.RoomSlot{
		ScreeningID:       screening.ID,
		MovieID:           screening.MovieID,
		StartTime:         screening.StartTime,
		DurationInMinutes: runtimeMinutes,
	}
	for _, existing := range f.slots[screening.RoomID] {
		if existing.StartTime.Before(candidate.End()) && existing.End().After(candidate.StartTime) {
			return fmt.Errorf("room %s: %w", screening.RoomID.String(), repository.ErrRoomUnavailable)
		}
	}

	f.slots[screening.RoomID] = append(f.slots[screening.RoomID], candidate)
	f.screenings[screening.ID] = screening
	return nil
}

func (f *fakeScreeningRepo) ReplaceIfRoomFree(_ context.Context, screening *entity.Screening, runtimeMinutes int) error {
	if _, ok := f.screenings[screening.ID]; !ok {
		return fmt.Errorf("screening %s: %w", screening.ID.String(), repository.ErrScreeningNotFound)
	}

	candidate := &entity.RoomSlot{
		ScreeningID:       screening.ID,
		MovieID:           screening.MovieID,
		StartTime:         screening.StartTime,
		DurationInMinutes: runtimeMinutes,
	}
	for _, existing := range f.slots[screening.RoomID] {
		if existing.ScreeningID == screening.ID {
			continue
		}
		if existing.StartTime.Before(candidate.End()) && existing.End().After(candidate.StartTime) {
			return fmt.Errorf("room %s: %w", screening.RoomID.String(), repository.ErrRoomUnavailable)
		}
	}

	old := f.screenings[screening.ID]
	filtered := f.slots[old.RoomID][:0]
	for _, slot := range f.slots[old.RoomID] {
		if slot.ScreeningID != screening.ID {
			filtered = append(filtered, slot)
		}
	}
	f.slots[old.RoomID] = filtered

	f.slots[screening.RoomID] = append(f.slots[screening.RoomID], candidate)
	f.screenings[screening.ID] = screening
	return nil
}

func (f *fakeScreeningRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ScreeningStatus) error {
	screening, ok := f.screenings[id]
	if !ok {
		return fmt.Errorf("screening %s: %w", id.String(), repository.ErrScreeningNotFound)
	}
	screening.Status = status
	return nil
}

func (f *fakeScreeningRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.screenings[id]; !ok {
		return fmt.Errorf("screening %s: %w", id.String(), repository.ErrScreeningNotFound)
	}
	delete(f.screenings, id)
	return nil
}

// addSlot seeds an existing screening directly, bypassing the overlap check.
func (f *fakeScreeningRepo) addSlot(roomID uuid.UUID, start time.Time, runtimeMinutes int) {
	f.addSlotFor(roomID, uuid.New(), start, runtimeMinutes)
}

func (f *fakeScreeningRepo) addSlotFor(roomID, movieID uuid.UUID, start time.Time, runtimeMinutes int) {
	f.slots[roomID] = append(f.slots[roomID], &entity.RoomSlot{
		ScreeningID:       uuid.New(),
		MovieID:           movieID,
		StartTime:         start,
		DurationInMinutes: runtimeMinutes,
	})
}

type fakeRunLock struct {
	held       bool
	acquireErr error
	acquires   int
	releases   int
}

func (l *fakeRunLock) Acquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	if l.acquireErr != nil {
		return false, l.acquireErr
	}
	l.acquires++
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *fakeRunLock) Release(_ context.Context, _ string) error {
	l.held = false
	l.releases++
	return nil
}

// firstPicker always chooses the first candidate, making generator runs
// deterministic.
type firstPicker struct{}

func (firstPicker) Pick(movies []*entity.Movie) *entity.Movie {
	if len(movies) == 0 {
		return nil
	}
	return movies[0]
}

// --- builders ---

func newTestRepo() (*repository.Repository, *fakeMovieRepo, *fakeRoomRepo, *fakeScreeningRepo) {
	movies := &fakeMovieRepo{byID: make(map[uuid.UUID]*entity.Movie)}
	rooms := &fakeRoomRepo{}
	screenings := newFakeScreeningRepo()

	repo := &repository.Repository{
		Movie:     movies,
		Room:      rooms,
		Screening: screenings,
	}
	return repo, movies, rooms, screenings
}

func newTestRoom(number, rows, cols int) *entity.Room {
	return &entity.Room{
		Base:        entity.Base{ID: uuid.New()},
		RoomNumber:  number,
		RowCount:    rows,
		ColumnCount: cols,
	}
}

func newTestMovie(title string, runtimeMinutes int, releaseDate *time.Time) *entity.Movie {
	return &entity.Movie{
		Base:              entity.Base{ID: uuid.New()},
		Title:             title,
		ReleaseDate:       releaseDate,
		DurationInMinutes: runtimeMinutes,
		IsAvailable:       true,
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
