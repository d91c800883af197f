package response

import (
	"cinema-ops/internal/data/entity"
)

type MovieResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       *string `json:"description,omitempty"`
	ReleaseDate       *string `json:"release_date,omitempty"`
	DurationInMinutes int     `json:"duration_in_minutes"`
	IsAvailable       bool    `json:"is_available"`
	IsComingSoon      bool    `json:"is_coming_soon"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	var releaseDate *string
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format("2006-01-02")
		releaseDate = &formatted
	}

	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		ReleaseDate:       releaseDate,
		DurationInMinutes: movie.DurationInMinutes,
		IsAvailable:       movie.IsAvailable,
		IsComingSoon:      movie.IsComingSoon,
	}
}

type RoomResponse struct {
	ID          string `json:"id"`
	RoomNumber  int    `json:"room_number"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
	Capacity    int    `json:"capacity"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID.String(),
		RoomNumber:  room.RoomNumber,
		RowCount:    room.RowCount,
		ColumnCount: room.ColumnCount,
		Capacity:    room.Capacity(),
	}
}
