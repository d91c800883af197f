package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// IsRoomFree reports whether the room has no active screening overlapping
	// the candidate interval [start, start+duration+cleanup buffer).
	// Duration is the movie runtime in minutes, the buffer is added here.
	IsRoomFree(ctx context.Context, roomID uuid.UUID, start time.Time, durationMinutes int) (bool, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// Pure read of current store state; the transactional insert re-checks the
// same condition at write time, so a stale answer here never corrupts data.
func (s *availabilityService) IsRoomFree(ctx context.Context, roomID uuid.UUID, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}

	slots, err := s.repo.Screening.FindActiveSlotsByRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("check availability of room %s: %w", roomID.String(), err)
	}

	candidateEnd := start.Add(time.Duration(durationMinutes+entity.CleanupBufferMinutes) * time.Minute)

	for _, slot := range slots {
		// half-open interval overlap
		if slot.StartTime.Before(candidateEnd) && slot.End().After(start) {
			return false, nil
		}
	}

	return true, nil
}
