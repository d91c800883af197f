package usecase

import "errors"

var (
	// ErrNoRoomAvailable means automatic allocation found no free room in the
	// required capacity tier.
	ErrNoRoomAvailable = errors.New("no suitable room is free at the requested time")

	// ErrMissingReleaseDate means premiere status cannot be evaluated.
	ErrMissingReleaseDate = errors.New("movie has no release date")

	// ErrGenerationInProgress means another schedule generation run holds the
	// single-flight lock.
	ErrGenerationInProgress = errors.New("schedule generation is already running")
)
