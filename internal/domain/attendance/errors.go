package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn = errors.New("you have already checked in")
	ErrNotCheckedIn     = errors.New("please check in first")
	ErrAlreadyOnBreak   = errors.New("you are already on break")
	ErrNotOnBreak       = errors.New("you are not currently on break")
)
