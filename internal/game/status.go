package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// State is the phase of the game.
type State int

const (
	StateAwaitingMove State = iota
	StateCheck
	StateCheckmate
	StateStalemate
	StateDraw
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingMove:
		return "awaiting move"
	case StateCheck:
		return "check"
	case StateCheckmate:
		return "checkmate"
	case StateStalemate:
		return "stalemate"
	case StateDraw:
		return "draw"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal returns true once no further move can be made.
func (s State) IsTerminal() bool {
	return s == StateCheckmate || s == StateStalemate || s == StateDraw
}

// StatusCode is the outcome of a move request.
type StatusCode int

const (
	StatusOK StatusCode = iota
	StatusIllegalMove
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusDraw
)

// String returns the code name.
func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "ok"
	case StatusIllegalMove:
		return "illegal move"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return "draw"
	default:
		return fmt.Sprintf("StatusCode(%d)", int(c))
	}
}

// DrawReason names the rule that drew the game.
type DrawReason int

const (
	DrawNone DrawReason = iota
	DrawThreefoldRepetition
	DrawFiftyMoveRule
	DrawInsufficientMaterial
)

// String returns the rule name.
func (r DrawReason) String() string {
	switch r {
	case DrawThreefoldRepetition:
		return "threefold repetition"
	case DrawFiftyMoveRule:
		return "fifty-move rule"
	case DrawInsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}

// Status is returned by Move. Winner is set only for StatusCheckmate and
// DrawReason only for StatusDraw.
type Status struct {
	Code       StatusCode
	Winner     board.Color
	DrawReason DrawReason
}

// String returns a one-line description of the status.
func (s Status) String() string {
	switch s.Code {
	case StatusCheckmate:
		return fmt.Sprintf("checkmate, %s wins", s.Winner)
	case StatusDraw:
		return fmt.Sprintf("draw by %s", s.DrawReason)
	default:
		return s.Code.String()
	}
}

// Reason explains why a move request was rejected.
type Reason int

const (
	ReasonNone Reason = iota // the move is legal
	ReasonGameOver
	ReasonNoPiece
	ReasonNotYourTurn
	ReasonBlockedByOwnPiece
	ReasonWouldLeaveKingInCheck
	ReasonInvalidPieceMovement
)

// String returns a message suitable for showing to a player.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "legal move"
	case ReasonGameOver:
		return "the game is over"
	case ReasonNoPiece:
		return "no piece on that square"
	case ReasonNotYourTurn:
		return "not your turn"
	case ReasonBlockedByOwnPiece:
		return "blocked by your own piece"
	case ReasonWouldLeaveKingInCheck:
		return "would leave your king in check"
	case ReasonInvalidPieceMovement:
		return "that piece cannot move there"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}
