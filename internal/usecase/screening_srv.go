package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ops/internal/data/entity"
	"cinema-ops/internal/data/repository"
	"cinema-ops/internal/dto/request"
	"cinema-ops/internal/dto/response"
	"cinema-ops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error)
	DeactivateScreening(ctx context.Context, screeningID string) error
}

type screeningService struct {
	repo         *repository.Repository
	availability AvailabilityService
	allocation   AllocationService
	config       *utils.Config
	log          *zap.Logger
}

func NewScreeningService(repo *repository.Repository, availability AvailabilityService, allocation AllocationService, config *utils.Config, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo:         repo,
		availability: availability,
		allocation:   allocation,
		config:       config,
		log:          log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %s: %w", req.StartTime, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("create screening: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, repository.ErrMovieNotFound)
	}

	var room *entity.Room
	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("invalid room ID format %s: %w", *req.RoomID, err)
		}

		room, err = s.repo.Room.FindByID(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("create screening: %w", err)
		}
		if room == nil {
			return nil, fmt.Errorf("room %s: %w", *req.RoomID, repository.ErrRoomNotFound)
		}

		// An explicitly requested room is never silently reassigned; a
		// conflict is a hard rejection.
		free, err := s.availability.IsRoomFree(ctx, room.ID, start, movie.DurationInMinutes)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, fmt.Errorf("room %d at %s: %w",
				room.RoomNumber, start.Format(time.RFC3339), repository.ErrRoomUnavailable)
		}
	} else {
		room, err = s.allocation.SelectRoom(ctx, movieID, start)
		if err != nil {
			return nil, err
		}
	}

	language := req.Language
	if language == "" {
		language = s.config.Generator.DefaultLanguage
	}

	now := time.Now()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		RoomID:    room.ID,
		StartTime: start,
		Language:  language,
		Status:    entity.ScreeningStatusActive,
	}

	// The availability check above may be stale by now; the insert re-checks
	// the overlap condition atomically.
	if err := s.repo.Screening.CreateIfRoomFree(ctx, screening, movie.DurationInMinutes); err != nil {
		s.log.Warn("Screening write rejected",
			zap.Error(err),
			zap.String("movie_id", req.MovieID),
			zap.String("room_id", room.ID.String()),
			zap.Time("start_time", start),
		)
		return nil, err
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Int("room_number", room.RoomNumber),
		zap.Time("start_time", start),
	)

	resp := response.ScreeningToResponse(screening, movie, room)
	return &resp, nil
}

func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening ID format %s: %w", screeningID, err)
	}

	existing, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID, repository.ErrScreeningNotFound)
	}

	movieID := existing.MovieID
	if req.MovieID != nil {
		movieID, err = uuid.Parse(*req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", *req.MovieID, err)
		}
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID.String(), repository.ErrMovieNotFound)
	}

	roomID := existing.RoomID
	if req.RoomID != nil {
		roomID, err = uuid.Parse(*req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("invalid room ID format %s: %w", *req.RoomID, err)
		}
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID.String(), repository.ErrRoomNotFound)
	}

	start := existing.StartTime
	if req.StartTime != nil {
		start, err = time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %s: %w", *req.StartTime, err)
		}
	}

	language := existing.Language
	if req.Language != nil {
		language = *req.Language
	}

	updated := &entity.Screening{
		Base: entity.Base{
			ID:        existing.ID,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now(),
		},
		MovieID:   movieID,
		RoomID:    room.ID,
		StartTime: start,
		Language:  language,
		Status:    existing.Status,
	}

	// Replace re-runs the overlap check inside the update, ignoring the
	// screening's own previous slot.
	if err := s.repo.Screening.ReplaceIfRoomFree(ctx, updated, movie.DurationInMinutes); err != nil {
		s.log.Warn("Screening replace rejected",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return nil, err
	}

	s.log.Info("Screening updated",
		zap.String("screening_id", screeningID),
		zap.Int("room_number", room.RoomNumber),
		zap.Time("start_time", start),
	)

	resp := response.ScreeningToResponse(updated, movie, room)
	return &resp, nil
}

func (s *screeningService) DeactivateScreening(ctx context.Context, screeningID string) error {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return fmt.Errorf("invalid screening ID format %s: %w", screeningID, err)
	}

	if err := s.repo.Screening.UpdateStatus(ctx, id, entity.ScreeningStatusCancelled); err != nil {
		return err
	}

	s.log.Info("Screening deactivated", zap.String("screening_id", screeningID))
	return nil
}
