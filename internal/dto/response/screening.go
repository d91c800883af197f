package response

import (
	"time"

	"cinema-ops/internal/data/entity"
)

type ScreeningResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	RoomID     string    `json:"room_id"`
	RoomNumber int       `json:"room_number"`
	StartTime  time.Time `json:"start_time"`
	// OccupiedUntil includes the cleanup buffer after the runtime.
	OccupiedUntil time.Time `json:"occupied_until"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

func ScreeningToResponse(s *entity.Screening, movie *entity.Movie, room *entity.Room) ScreeningResponse {
	occupied := time.Duration(movie.DurationInMinutes+entity.CleanupBufferMinutes) * time.Minute

	return ScreeningResponse{
		ID:            s.ID.String(),
		MovieID:       movie.ID.String(),
		MovieTitle:    movie.Title,
		RoomID:        room.ID.String(),
		RoomNumber:    room.RoomNumber,
		StartTime:     s.StartTime,
		OccupiedUntil: s.StartTime.Add(occupied),
		Language:      s.Language,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
	}
}

type RoomSlotResponse struct {
	ScreeningID   string    `json:"screening_id"`
	MovieID       string    `json:"movie_id"`
	StartTime     time.Time `json:"start_time"`
	OccupiedUntil time.Time `json:"occupied_until"`
}

func RoomSlotToResponse(slot *entity.RoomSlot) RoomSlotResponse {
	return RoomSlotResponse{
		ScreeningID:   slot.ScreeningID.String(),
		MovieID:       slot.MovieID.String(),
		StartTime:     slot.StartTime,
		OccupiedUntil: slot.End(),
	}
}
