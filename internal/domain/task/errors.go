package task

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)
