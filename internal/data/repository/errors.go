package repository

import "errors"

// Domain errors surfaced by the scheduling core. Callers match with errors.Is.
var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrScreeningNotFound = errors.New("screening not found")

	// ErrRoomUnavailable means the requested room already has an active
	// screening whose occupied interval overlaps the candidate's.
	ErrRoomUnavailable = errors.New("room is not available at the requested time")
)
