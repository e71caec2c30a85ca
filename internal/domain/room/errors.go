package room

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNameEmpty = errors.New("room name must not be empty")
)
