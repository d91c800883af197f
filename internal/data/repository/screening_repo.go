package repository

import (
	"context"
	"fmt"

	"cinema-ops/internal/data/entity"
	"cinema-ops/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreeningRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)

	// FindActiveSlotsByRoom returns every active screening in a room joined
	// with its movie's runtime, ordered by start time.
	FindActiveSlotsByRoom(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomSlot, error)

	// OccupancyByMovie returns per-screening capacity and confirmed
	// reservation counts for every screening of a movie.
	OccupancyByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.OccupancySample, error)

	// CreateIfRoomFree inserts the screening only when no active screening in
	// the same room overlaps its occupied interval. The overlap condition is
	// evaluated inside the INSERT, so check and write are one atomic step.
	// Returns ErrRoomUnavailable when the slot was taken.
	CreateIfRoomFree(ctx context.Context, screening *entity.Screening, runtimeMinutes int) error

	// ReplaceIfRoomFree rewrites an existing screening under the same overlap
	// condition, ignoring the screening's own previous slot.
	ReplaceIfRoomFree(ctx context.Context, screening *entity.Screening, runtimeMinutes int) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ScreeningStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, movie_id, room_id, start_time, language, status, created_at, updated_at, deleted_at
		FROM screenings
		WHERE id = $1 AND deleted_at IS NULL
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.RoomID,
		&screening.StartTime,
		&screening.Language,
		&screening.Status,
		&screening.CreatedAt,
		&screening.UpdatedAt,
		&screening.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindActiveSlotsByRoom(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomSlot, error) {
	query := `
		SELECT s.id, s.movie_id, s.start_time, m.duration_in_minutes
		FROM screenings s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.room_id = $1 AND s.status = $2 AND s.deleted_at IS NULL
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, roomID, entity.ScreeningStatusActive)
	if err != nil {
		r.log.Error("Failed to find active slots by room",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find active slots for room %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.RoomSlot
	for rows.Next() {
		var slot entity.RoomSlot
		err := rows.Scan(
			&slot.ScreeningID,
			&slot.MovieID,
			&slot.StartTime,
			&slot.DurationInMinutes,
		)
		if err != nil {
			r.log.Error("Failed to scan room slot row", zap.Error(err))
			return nil, fmt.Errorf("scan room slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

func (r *screeningRepository) OccupancyByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.OccupancySample, error) {
	query := `
		SELECT s.id,
		       ro.row_count * ro.column_count AS capacity,
		       COALESCE(res.reserved, 0) AS reserved
		FROM screenings s
		JOIN rooms ro ON ro.id = s.room_id
		LEFT JOIN (
			SELECT screening_id, COUNT(*) AS reserved
			FROM reservations
			WHERE status = 'CONFIRMED'
			GROUP BY screening_id
		) res ON res.screening_id = s.id
		WHERE s.movie_id = $1 AND s.deleted_at IS NULL
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to load occupancy samples",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("load occupancy for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var samples []*entity.OccupancySample
	for rows.Next() {
		var sample entity.OccupancySample
		err := rows.Scan(
			&sample.ScreeningID,
			&sample.Capacity,
			&sample.Reserved,
		)
		if err != nil {
			r.log.Error("Failed to scan occupancy sample row", zap.Error(err))
			return nil, fmt.Errorf("scan occupancy sample row: %w", err)
		}
		samples = append(samples, &sample)
	}

	return samples, nil
}

func (r *screeningRepository) CreateIfRoomFree(ctx context.Context, screening *entity.Screening, runtimeMinutes int) error {
	query := `
		INSERT INTO screenings (id, movie_id, room_id, start_time, language, status, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE NOT EXISTS (
			SELECT 1
			FROM screenings s
			JOIN movies m ON m.id = s.movie_id
			WHERE s.room_id = $3
			  AND s.status = $11
			  AND s.deleted_at IS NULL
			  AND s.start_time < $4 + ($9::int + $10::int) * interval '1 minute'
			  AND s.start_time + (m.duration_in_minutes + $10::int) * interval '1 minute' > $4
		)
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.RoomID,
		screening.StartTime,
		screening.Language,
		screening.Status,
		screening.CreatedAt,
		screening.UpdatedAt,
		runtimeMinutes,
		entity.CleanupBufferMinutes,
		entity.ScreeningStatusActive,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("room_id", screening.RoomID.String()),
			zap.Time("start_time", screening.StartTime),
		)
		return fmt.Errorf("create screening for movie %s in room %s: %w",
			screening.MovieID.String(), screening.RoomID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s at %s: %w",
			screening.RoomID.String(), screening.StartTime.Format("2006-01-02 15:04"), ErrRoomUnavailable)
	}

	return nil
}

func (r *screeningRepository) ReplaceIfRoomFree(ctx context.Context, screening *entity.Screening, runtimeMinutes int) error {
	query := `
		UPDATE screenings
		SET movie_id = $2, room_id = $3, start_time = $4, language = $5, status = $6, updated_at = $7
		WHERE id = $1
		  AND deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1
			FROM screenings s
			JOIN movies m ON m.id = s.movie_id
			WHERE s.room_id = $3
			  AND s.id <> $1
			  AND s.status = $8
			  AND s.deleted_at IS NULL
			  AND s.start_time < $4 + ($9::int + $10::int) * interval '1 minute'
			  AND s.start_time + (m.duration_in_minutes + $10::int) * interval '1 minute' > $4
		)
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.RoomID,
		screening.StartTime,
		screening.Language,
		screening.Status,
		screening.UpdatedAt,
		entity.ScreeningStatusActive,
		runtimeMinutes,
		entity.CleanupBufferMinutes,
	)

	if err != nil {
		r.log.Error("Failed to replace screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("replace screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s room %s: %w",
			screening.ID.String(), screening.RoomID.String(), ErrRoomUnavailable)
	}

	return nil
}

func (r *screeningRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ScreeningStatus) error {
	query := `
		UPDATE screenings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update screening status",
			zap.Error(err),
			zap.String("screening_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update screening %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", id.String(), ErrScreeningNotFound)
	}

	return nil
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE screenings SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", id.String(), ErrScreeningNotFound)
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}
