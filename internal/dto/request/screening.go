package request

type CreateScreeningRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid4"`
	// RoomID is optional: when absent the allocator picks a room based on
	// premiere status and historical occupancy.
	RoomID    *string `json:"room_id,omitempty" validate:"omitempty,uuid4"`
	StartTime string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Language  string  `json:"language,omitempty" validate:"omitempty,max=50"`
}

type UpdateScreeningRequest struct {
	MovieID   *string `json:"movie_id,omitempty" validate:"omitempty,uuid4"`
	RoomID    *string `json:"room_id,omitempty" validate:"omitempty,uuid4"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Language  *string `json:"language,omitempty" validate:"omitempty,max=50"`
}
