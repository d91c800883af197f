package usecase

import (
	"cinema-ops/internal/data/repository"
	"cinema-ops/pkg/lock"
	"cinema-ops/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog   CatalogService
	Screening ScreeningService
	Generator GeneratorService
}

func NewService(repo *repository.Repository, config *utils.Config, runLock lock.RunLock, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)
	occupancy := NewOccupancyService(repo, log)
	allocation := NewAllocationService(repo, availability, occupancy, log)

	return &Service{
		Catalog:   NewCatalogService(repo, log),
		Screening: NewScreeningService(repo, availability, allocation, config, log),
		Generator: NewGeneratorService(repo, availability, runLock, NewRandomPicker(), config, log),
	}
}
