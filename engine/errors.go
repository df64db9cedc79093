package engine

import "errors"

var (
	ErrUnknownMode      = errors.New("unknown injection mode")
	ErrDegenerateBounds = errors.New("bounds need at least 3 finite vertices")
	ErrTooFewNodes      = errors.New("path needs at least one node")
)
