package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetEligibleMovies(t *testing.T) {
	repo, movies, _, _ := newTestRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	movies.eligible = []*entity.Movie{
		newTestMovie("First", 100, timePtr(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))),
		newTestMovie("Second", 90, nil),
	}

	out, err := svc.GetEligibleMovies(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title)
	require.NotNil(t, out[0].ReleaseDate)
	assert.Equal(t, "2026-08-27", *out[0].ReleaseDate)
	assert.Nil(t, out[1].ReleaseDate)
}

func TestGetRooms(t *testing.T) {
	repo, _, rooms, _ := newTestRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	rooms.rooms = []*entity.Room{newTestRoom(1, 10, 20)}

	out, err := svc.GetRooms(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 200, out[0].Capacity)
}

func TestGetRoomSchedule(t *testing.T) {
	repo, _, rooms, screenings := newTestRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	room := newTestRoom(1, 10, 10)
	rooms.rooms = []*entity.Room{room}

	start := time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)
	screenings.addSlot(room.ID, start, 100)

	out, err := svc.GetRoomSchedule(context.Background(), room.ID.String())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, start, out[0].StartTime)
	assert.Equal(t, start.Add(2*time.Hour), out[0].OccupiedUntil)
}

func TestGetRoomSchedule_RoomNotFound(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	_, err := svc.GetRoomSchedule(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestGetRoomSchedule_InvalidID(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewCatalogService(repo, zap.NewNop())

	_, err := svc.GetRoomSchedule(context.Background(), "not-a-uuid")

	assert.Error(t, err)
}
