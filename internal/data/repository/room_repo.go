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

// RoomRepository is read-only: the room registry is owned elsewhere.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `
		SELECT id, room_number, row_count, column_count, created_at, updated_at, deleted_at
		FROM rooms
		WHERE id = $1 AND deleted_at IS NULL
	`

	var room entity.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.RoomNumber,
		&room.RowCount,
		&room.ColumnCount,
		&room.CreatedAt,
		&room.UpdatedAt,
		&room.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT id, room_number, row_count, column_count, created_at, updated_at, deleted_at
		FROM rooms
		WHERE deleted_at IS NULL
		ORDER BY room_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find rooms", zap.Error(err))
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.RoomNumber,
			&room.RowCount,
			&room.ColumnCount,
			&room.CreatedAt,
			&room.UpdatedAt,
			&room.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, nil
}
