package rfid

import "errors"

var (
	ErrMachineNotFound = errors.New("rfid machine not found")
	ErrCardNotFound    = errors.New("rfid card not found")
	ErrCardExists      = errors.New("rfid card already registered")
	ErrEmployeeHasCard = errors.New("employee already holds a card")
)
