package board

import "errors"

var (
	// ErrInvalidTileFormat is returned when a tile identifier is not one
	// lowercase file letter a-h followed by one rank digit 1-8.
	ErrInvalidTileFormat = errors.New("invalid tile format")

	// ErrInvariantViolation indicates a corrupted board state (missing king,
	// desynchronised occupancy). It signals an engine bug and is fatal.
	ErrInvariantViolation = errors.New("board invariant violation")

	// ErrNotLegal is returned by Apply when asked to commit a move that the
	// legality filter rejects.
	ErrNotLegal = errors.New("move is not legal")
)
