package catalog

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNumberTaken = errors.New("room number already exists")
	ErrServiceNotFound = errors.New("service not found")
	ErrSessionNotFound = errors.New("yoga session not found")
	ErrSessionDates    = errors.New("session end date must be after its start date")
	ErrInvalidDates    = errors.New("check-out must be after check-in")
)
