package server

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidPhase       = errors.New("action not allowed in the current phase")
	ErrUnauthorized       = errors.New("not allowed")
	ErrQuotaExceeded      = errors.New("question limit reached")
	ErrInsufficientRoster = errors.New("at least 3 players are required")
	ErrAlreadyInRoom      = errors.New("already in another room")
)
