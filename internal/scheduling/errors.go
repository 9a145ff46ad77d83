package scheduling

import "errors"

var (
	ErrMalformedSchedule = errors.New("scheduling: malformed schedule")
	ErrInvalidSettings   = errors.New("scheduling: invalid settings")
)
