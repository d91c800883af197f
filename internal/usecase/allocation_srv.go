package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// premiereWindowDays is how long after release a movie is treated as a
	// premiere and routed to the largest free room.
	premiereWindowDays = 7

	// occupancyThreshold is the historical fill rate (percent) above which a
	// non-premiere movie still gets the largest free room.
	occupancyThreshold = 70.0
)

type AllocationService interface {
	// SelectRoom picks a room for a screening when the caller did not request
	// one explicitly.
	SelectRoom(ctx context.Context, movieID uuid.UUID, start time.Time) (*entity.Room, error)
}

type allocationService struct {
	repo         *repository.Repository
	availability AvailabilityService
	occupancy    OccupancyService
	log          *zap.Logger
}

func NewAllocationService(repo *repository.Repository, availability AvailabilityService, occupancy OccupancyService, log *zap.Logger) AllocationService {
	return &allocationService{
		repo:         repo,
		availability: availability,
		occupancy:    occupancy,
		log:          log.With(zap.String("service", "allocation")),
	}
}

func (s *allocationService) SelectRoom(ctx context.Context, movieID uuid.UUID, start time.Time) (*entity.Room, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("select room: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID.String(), repository.ErrMovieNotFound)
	}
	if movie.ReleaseDate == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID.String(), ErrMissingReleaseDate)
	}

	// Premieres always target the largest tier. Outside the premiere window
	// the demand history decides: high fill rate gets a large room, anything
	// else gets the smallest free room to avoid wasted seats.
	wantLargest := isPremiere(start, *movie.ReleaseDate)
	if !wantLargest {
		occ, err := s.occupancy.HistoricalOccupancy(ctx, movieID)
		if err != nil {
			return nil, err
		}
		wantLargest = occ > occupancyThreshold
	}

	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("select room: %w", err)
	}

	orderRoomsByCapacity(rooms, wantLargest)

	for _, room := range rooms {
		free, err := s.availability.IsRoomFree(ctx, room.ID, start, movie.DurationInMinutes)
		if err != nil {
			return nil, err
		}
		if free {
			s.log.Info("Room selected",
				zap.String("movie_id", movieID.String()),
				zap.String("room_id", room.ID.String()),
				zap.Int("room_number", room.RoomNumber),
				zap.Int("capacity", room.Capacity()),
				zap.Bool("largest_tier", wantLargest),
			)
			return room, nil
		}
	}

	return nil, fmt.Errorf("movie %s at %s: %w",
		movieID.String(), start.Format(time.RFC3339), ErrNoRoomAvailable)
}

// isPremiere reports whether start falls inside [release day 00:00,
// release day + 7 days], both boundaries inclusive.
func isPremiere(start, releaseDate time.Time) bool {
	releaseDay := time.Date(releaseDate.Year(), releaseDate.Month(), releaseDate.Day(),
		0, 0, 0, 0, releaseDate.Location())
	windowEnd := releaseDay.AddDate(0, 0, premiereWindowDays)
	return !start.Before(releaseDay) && !start.After(windowEnd)
}

// orderRoomsByCapacity sorts by capacity, breaking ties by room number then
// ID so allocation among equal-capacity rooms stays deterministic.
func orderRoomsByCapacity(rooms []*entity.Room, largestFirst bool) {
	sort.SliceStable(rooms, func(i, j int) bool {
		ci, cj := rooms[i].Capacity(), rooms[j].Capacity()
		if ci != cj {
			if largestFirst {
				return ci > cj
			}
			return ci < cj
		}
		if rooms[i].RoomNumber != rooms[j].RoomNumber {
			return rooms[i].RoomNumber < rooms[j].RoomNumber
		}
		return rooms[i].ID.String() < rooms[j].ID.String()
	})
}
