package usecase

import (
	"context"
	"fmt"

	"cinema-ops/internal/data/repository"
	"cinema-ops/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService exposes the read side: eligible movies, rooms, and a room's
// current timetable.
type CatalogService interface {
	GetEligibleMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetRooms(ctx context.Context) ([]response.RoomResponse, error)
	GetRoomSchedule(ctx context.Context, roomID string) ([]response.RoomSlotResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetEligibleMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindEligible(ctx)
	if err != nil {
		s.log.Error("Failed to get eligible movies", zap.Error(err))
		return nil, fmt.Errorf("get eligible movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return movieResponses, nil
}

func (s *catalogService) GetRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get rooms", zap.Error(err))
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return roomResponses, nil
}

func (s *catalogService) GetRoomSchedule(ctx context.Context, roomID string) ([]response.RoomSlotResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room schedule: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, repository.ErrRoomNotFound)
	}

	slots, err := s.repo.Screening.FindActiveSlotsByRoom(ctx, id)
	if err != nil {
		s.log.Error("Failed to get room schedule",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("get schedule of room %s: %w", roomID, err)
	}

	slotResponses := make([]response.RoomSlotResponse, len(slots))
	for i, slot := range slots {
		slotResponses[i] = response.RoomSlotToResponse(slot)
	}

	return slotResponses, nil
}
