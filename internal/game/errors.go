package game

import "errors"

var (
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrInvalidDimensions = errors.New("board dimensions out of range")
	ErrInvalidMineCount  = errors.New("invalid mine count")
	ErrDensityExceeded   = errors.New("mine density too high")
	ErrIllegalState      = errors.New("illegal session state")
)
