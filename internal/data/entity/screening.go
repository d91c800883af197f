package entity

import (
	"time"

	"github.com/google/uuid"
)

// CleanupBufferMinutes is the turnover time a room stays blocked after a
// screening's runtime (cleaning between showings).
const CleanupBufferMinutes = 20

type ScreeningStatus string

const (
	ScreeningStatusActive    ScreeningStatus = "ACTIVE"
	ScreeningStatusCancelled ScreeningStatus = "CANCELLED"
	ScreeningStatusFinished  ScreeningStatus = "FINISHED"
)

type Screening struct {
	Base
	MovieID   uuid.UUID       `db:"movie_id"`
	RoomID    uuid.UUID       `db:"room_id"`
	StartTime time.Time       `db:"start_time"`
	Language  string          `db:"language"`
	Status    ScreeningStatus `db:"status"`
}

// RoomSlot is the read model used for overlap checks: one active screening in
// a room together with its movie's runtime.
type RoomSlot struct {
	ScreeningID       uuid.UUID `db:"id"`
	MovieID           uuid.UUID `db:"movie_id"`
	StartTime         time.Time `db:"start_time"`
	DurationInMinutes int       `db:"duration_in_minutes"`
}

// End is the moment the room becomes free again, runtime plus cleanup buffer.
func (s *RoomSlot) End() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationInMinutes+CleanupBufferMinutes) * time.Minute)
}

// OccupancySample is one past screening's seat usage: room capacity against
// confirmed reservations. Reservations themselves are owned elsewhere; the
// scheduler only reads the aggregate count.
type OccupancySample struct {
	ScreeningID uuid.UUID `db:"id"`
	Capacity    int       `db:"capacity"`
	Reserved    int       `db:"reserved"`
}
