package repository

import (
	"cinema-ops/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie     MovieRepository
	Room      RoomRepository
	Screening ScreeningRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:     NewMovieRepository(db, log),
		Room:      NewRoomRepository(db, log),
		Screening: NewScreeningRepository(db, log),
	}
}
