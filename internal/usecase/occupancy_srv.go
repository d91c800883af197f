package usecase

import (
	"context"
	"fmt"

	"cinema-ops/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OccupancyService interface {
	// HistoricalOccupancy returns the movie's aggregate fill rate in percent
	// over all its screenings, 0 when it has none.
	HistoricalOccupancy(ctx context.Context, movieID uuid.UUID) (float64, error)
}

type occupancyService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOccupancyService(repo *repository.Repository, log *zap.Logger) OccupancyService {
	return &occupancyService{
		repo: repo,
		log:  log.With(zap.String("service", "occupancy")),
	}
}

// Plain ratio of summed reservations to summed capacity. Observed demand
// only, no recency weighting.
func (s *occupancyService) HistoricalOccupancy(ctx context.Context, movieID uuid.UUID) (float64, error) {
	samples, err := s.repo.Screening.OccupancyByMovie(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("historical occupancy of movie %s: %w", movieID.String(), err)
	}

	var totalCapacity, totalReserved int
	for _, sample := range samples {
		totalCapacity += sample.Capacity
		totalReserved += sample.Reserved
	}

	if totalCapacity == 0 {
		return 0, nil
	}

	return 100 * float64(totalReserved) / float64(totalCapacity), nil
}
