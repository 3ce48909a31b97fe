package game

import "errors"

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrStaleIdentity  = errors.New("stale entity identity")
	ErrNotTollBooth   = errors.New("entity is not a toll booth")
	ErrSlotOccupied   = errors.New("entity slot already occupied")
)
