package board

// Color represents the color of a piece or player.
// NoColor is only ever paired with NoKind in the empty sentinel.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Other returns the opposite color. NoColor has no opposite.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// index maps White/Black onto 0/1 for per-side arrays.
func (c Color) index() int {
	if c == Black {
		return 1
	}
	return 0
}

// Kind represents the kind of a chess piece. NoKind marks an empty square.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Empty"
	}
}

// Char returns the lowercase letter for the kind ('p', 'n', ...), or ' ' for NoKind.
func (k Kind) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if int(k) >= len(chars) {
		return ' '
	}
	return chars[k]
}

// KindFromChar converts a promotion letter (either case) to a Kind.
// Only knight, bishop, rook and queen are accepted.
func KindFromChar(c byte) (Kind, bool) {
	switch c {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	}
	return NoKind, false
}

// Piece is an immutable (Color, Kind) pair. The zero value is the empty
// sentinel, so a fresh [64]Piece grid is an empty board.
type Piece struct {
	color Color
	kind  Kind
}

// NoPiece is the empty-square sentinel.
var NoPiece = Piece{}

// NewPiece creates a Piece. A pair that mixes NoColor with a real kind (or a
// real color with NoKind) collapses to NoPiece.
func NewPiece(c Color, k Kind) Piece {
	if c == NoColor || k == NoKind || c > Black || k > King {
		return NoPiece
	}
	return Piece{color: c, kind: k}
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	return p.color
}

// Kind returns the kind of the piece.
func (p Piece) Kind() Kind {
	return p.kind
}

// IsEmpty returns true for the empty sentinel.
func (p Piece) IsEmpty() bool {
	return p.kind == NoKind
}

// String returns the FEN-style letter for the piece.
// Uppercase for white, lowercase for black, "." for an empty square.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	ch := p.kind.Char()
	if p.color == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// Name returns the identity key a renderer maps to an asset,
// e.g. "White+Pawn", or "Empty".
func (p Piece) Name() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.color.String() + "+" + p.kind.String()
}

// PieceValue returns the material value of each kind in centipawns.
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 20000}
