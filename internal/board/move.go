package board

import "fmt"

// MoveFlag tags the special handling a move needs when it is applied.
type MoveFlag uint8

// Move flags
const (
	FlagNormal MoveFlag = iota
	FlagCastle
	FlagEnPassant
	FlagPromotion
)

// String returns the flag name.
func (f MoveFlag) String() string {
	switch f {
	case FlagCastle:
		return "castle"
	case FlagEnPassant:
		return "en-passant"
	case FlagPromotion:
		return "promotion"
	default:
		return "normal"
	}
}

// Move is a candidate or committed move. Promotion is NoKind unless Flag is
// FlagPromotion. Moves are plain values and compare with ==.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
	Flag      MoveFlag
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo Kind) Move {
	return Move{From: from, To: to, Promotion: promo, Flag: FlagPromotion}
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move{From: from, To: to, Flag: FlagEnPassant}
}

// NewCastling creates a castling move (king's movement).
func NewCastling(from, to Square) Move {
	return Move{From: from, To: to, Flag: FlagCastle}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag == FlagPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag == FlagCastle
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag == FlagEnPassant
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses the coordinate form of a move ("e2e4", "e7e8q").
// The returned move is a candidate only: its flag is resolved against the
// legal moves of a position by Position.FindMove.
func ParseMove(s string) (from, to Square, promo Kind, err error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, NoKind, fmt.Errorf("%w: move %q", ErrInvalidTileFormat, s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, NoKind, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, NoKind, err
	}
	if len(s) == 5 {
		var ok bool
		if promo, ok = KindFromChar(s[4]); !ok {
			return NoSquare, NoSquare, NoKind, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}
	return from, to, promo, nil
}

// Record is an immutable entry of the move log.
type Record struct {
	Move     Move
	Mover    Piece
	Captured Piece // NoPiece when the move captured nothing
	Ply      int   // 1-based
}

// String returns the coordinate form of the recorded move.
func (r Record) String() string {
	return r.Move.String()
}
