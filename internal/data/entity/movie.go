package entity

import (
	"time"
)

type Movie struct {
	Base
	Title             string     `db:"title"`
	Description       *string    `db:"description"`
	ReleaseDate       *time.Time `db:"release_date"`
	DurationInMinutes int        `db:"duration_in_minutes"`
	IsAvailable       bool       `db:"is_available"`
	IsComingSoon      bool       `db:"is_coming_soon"`
}
