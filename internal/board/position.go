package board

import (
	"fmt"
	"slices"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the castling rights in KQkq form, "-" when none remain.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for _, r := range []struct {
		flag CastlingRights
		ch   byte
	}{
		{WhiteKingSideCastle, 'K'},
		{WhiteQueenSideCastle, 'Q'},
		{BlackKingSideCastle, 'k'},
		{BlackQueenSideCastle, 'q'},
	} {
		if cr&r.flag != 0 {
			sb.WriteByte(r.ch)
		}
	}
	return sb.String()
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleFlag(c, kingSide) != 0
}

func castleFlag(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case c == Black && kingSide:
		return BlackKingSideCastle
	case c == Black:
		return BlackQueenSideCastle
	}
	return NoCastling
}

// castlingLoss maps a square to the rights lost when a piece leaves or lands on it.
var castlingLoss = map[Square]CastlingRights{
	A1: WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	E1: WhiteKingSideCastle | WhiteQueenSideCastle,
	A8: BlackQueenSideCastle,
	H8: BlackKingSideCastle,
	E8: BlackKingSideCastle | BlackQueenSideCastle,
}

// Position is the complete state of a game: the 64-square grid, whose turn it
// is, castling rights, the en passant target, clocks and the move log.
//
// The mailbox and the bitboards describe the same placement; every mutation
// goes through setPiece/removePiece/movePiece so they never drift apart.
type Position struct {
	squares  [64]Piece
	pieces   [2][7]Bitboard // [color index][Kind]
	occupied [2]Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Plies since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	// Zobrist hash of placement, side, castling rights and en passant file.
	Hash uint64

	kingSquare [2]Square
	log        []Record
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := EmptyPosition()
	for file := 0; file < 8; file++ {
		p.setPiece(NewPiece(White, backRank[file]), NewSquare(file, 0))
		p.setPiece(NewPiece(White, Pawn), NewSquare(file, 1))
		p.setPiece(NewPiece(Black, Pawn), NewSquare(file, 6))
		p.setPiece(NewPiece(Black, backRank[file]), NewSquare(file, 7))
	}
	p.CastlingRights = AllCastling
	p.Hash = p.computeHash()
	return p
}

// EmptyPosition returns a board with no pieces, White to move and no
// castling rights. Fill it with Put and finish with Refresh.
func EmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		SideToMove:     White,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
		kingSquare:     [2]Square{NoSquare, NoSquare},
	}
}

// Put places piece on sq, replacing whatever was there. NoPiece empties the
// square. Call Refresh once the setup is complete.
func (p *Position) Put(sq Square, piece Piece) {
	p.removePiece(sq)
	p.setPiece(piece, sq)
}

// Refresh recomputes the hash after a manual setup and validates the result.
func (p *Position) Refresh() error {
	p.Hash = p.computeHash()
	return p.Validate()
}

// Copy creates a deep copy of the position, including its move log.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.log = slices.Clone(p.log)
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty or
// off the board.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq).IsEmpty()
}

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c.index()]
}

// Pieces returns the bitboard of pieces of the given color and kind.
func (p *Position) Pieces(c Color, k Kind) Bitboard {
	return p.pieces[c.index()][k]
}

// Occupied returns the bitboard of every piece of color c.
func (p *Position) Occupied(c Color) Bitboard {
	return p.occupied[c.index()]
}

// AllOccupied returns the bitboard of every piece on the board.
func (p *Position) AllOccupied() Bitboard {
	return p.occupied[0] | p.occupied[1]
}

// setPiece places a piece on an empty square (does not update hash).
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece.IsEmpty() {
		return
	}
	ci := piece.Color().index()
	bb := SquareBB(sq)

	p.squares[sq] = piece
	p.pieces[ci][piece.Kind()] |= bb
	p.occupied[ci] |= bb

	if piece.Kind() == King {
		p.kingSquare[ci] = sq
	}
}

// removePiece removes a piece from a square (does not update hash).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.squares[sq]
	if piece.IsEmpty() {
		return NoPiece
	}
	ci := piece.Color().index()
	bb := SquareBB(sq)

	p.squares[sq] = NoPiece
	p.pieces[ci][piece.Kind()] &^= bb
	p.occupied[ci] &^= bb

	if piece.Kind() == King && p.kingSquare[ci] == sq {
		p.kingSquare[ci] = NoSquare
	}
	return piece
}

// movePiece moves a piece from one square to an empty one (does not update hash).
func (p *Position) movePiece(from, to Square) {
	piece := p.removePiece(from)
	p.setPiece(piece, to)
}

// Apply commits m. The move must be one of LegalMoves(m.From); anything else
// is refused with ErrNotLegal and leaves the position untouched. A promotion
// with Promotion == NoKind promotes to a queen.
func (p *Position) Apply(m Move) error {
	promo := m.Promotion
	if m.Flag == FlagPromotion && promo == NoKind {
		promo = Queen
	}
	legal, ok := p.FindMove(m.From, m.To, promo)
	if !ok || (m.Flag != FlagNormal && legal.Flag != m.Flag) {
		return fmt.Errorf("%w: %s", ErrNotLegal, m)
	}

	p.makeMove(legal)

	if err := p.Validate(); err != nil {
		return fmt.Errorf("after %s: %w", legal, err)
	}
	return nil
}

// makeMove applies a move known to be legal and appends it to the log.
func (p *Position) makeMove(m Move) {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From, m.To
	mover := p.squares[from]
	kind := mover.Kind()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	captured := NoPiece
	switch {
	case m.IsEnPassant():
		capSq := NewSquare(to.File(), from.Rank())
		captured = p.removePiece(capSq)
		p.Hash ^= zobristPiece[them.index()][Pawn][capSq]
	case !p.squares[to].IsEmpty():
		captured = p.removePiece(to)
		p.Hash ^= zobristPiece[them.index()][captured.Kind()][to]
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[us.index()][kind][from]
	p.Hash ^= zobristPiece[us.index()][kind][to]

	if m.IsPromotion() {
		p.removePiece(to)
		p.setPiece(NewPiece(us, m.Promotion), to)
		p.Hash ^= zobristPiece[us.index()][Pawn][to]
		p.Hash ^= zobristPiece[us.index()][m.Promotion][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[us.index()][Rook][rookFrom]
		p.Hash ^= zobristPiece[us.index()][Rook][rookTo]
	}

	p.CastlingRights &^= castlingLoss[from] | castlingLoss[to]
	p.Hash ^= zobristCastling[p.CastlingRights]

	if kind == Pawn && abs(int(to)-int(from)) == 16 {
		ep := Square((int(from) + int(to)) / 2)
		p.EnPassant = ep
		p.Hash ^= zobristEnPassant[ep.File()]
	}

	if kind == Pawn || !captured.IsEmpty() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them

	p.log = append(p.log, Record{
		Move:     m,
		Mover:    mover,
		Captured: captured,
		Ply:      len(p.log) + 1,
	})
}

// castlingRookSquares returns the rook's origin and destination for a
// castling king move from -> to.
func castlingRookSquares(from, to Square) (Square, Square) {
	rank := from.Rank()
	if to > from {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Validate checks the structural invariants of the position. Every error it
// returns wraps ErrInvariantViolation.
func (p *Position) Validate() error {
	for _, c := range []Color{White, Black} {
		kings := p.pieces[c.index()][King]
		if kings.PopCount() != 1 {
			return fmt.Errorf("%w: %s must have exactly one king, has %d", ErrInvariantViolation, c, kings.PopCount())
		}
		if p.kingSquare[c.index()] != kings.LSB() {
			return fmt.Errorf("%w: %s king cached on %s but found on %s",
				ErrInvariantViolation, c, p.kingSquare[c.index()], kings.LSB())
		}
	}

	if (p.pieces[0][Pawn]|p.pieces[1][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvariantViolation)
	}
	if p.occupied[0]&p.occupied[1] != 0 {
		return fmt.Errorf("%w: squares occupied by both colors", ErrInvariantViolation)
	}

	for sq := A1; sq <= H8; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() {
			if p.AllOccupied().IsSet(sq) {
				return fmt.Errorf("%w: %s empty in grid but occupied in bitboards", ErrInvariantViolation, sq)
			}
			continue
		}
		if !p.pieces[piece.Color().index()][piece.Kind()].IsSet(sq) {
			return fmt.Errorf("%w: %s holds %s in grid but not in bitboards", ErrInvariantViolation, sq, piece.Name())
		}
	}

	if p.SideToMove != White && p.SideToMove != Black {
		return fmt.Errorf("%w: side to move is %s", ErrInvariantViolation, p.SideToMove)
	}
	if p.InCheck(p.SideToMove.Other()) {
		return fmt.Errorf("%w: %s to move can capture the king", ErrInvariantViolation, p.SideToMove)
	}
	return nil
}

// History returns a copy of the move log, oldest first.
func (p *Position) History() []Record {
	return slices.Clone(p.log)
}

// Plies returns the number of committed moves.
func (p *Position) Plies() int {
	return len(p.log)
}

// LastMove returns the most recent log entry.
func (p *Position) LastMove() (Record, bool) {
	if len(p.log) == 0 {
		return Record{}, false
	}
	return p.log[len(p.log)-1], true
}

// Snapshot is a comparable copy of everything observable about a position.
type Snapshot struct {
	Squares        [64]Piece
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Plies          int
	Hash           uint64
}

// Snapshot captures the current state.
func (p *Position) Snapshot() Snapshot {
	return Snapshot{
		Squares:        p.squares,
		SideToMove:     p.SideToMove,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
		Plies:          len(p.log),
		Hash:           p.Hash,
	}
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.squares[NewSquare(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Material returns the material balance (positive favors white).
func (p *Position) Material() int {
	score := 0
	for k := Pawn; k < King; k++ {
		score += p.pieces[0][k].PopCount() * PieceValue[k]
		score -= p.pieces[1][k].PopCount() * PieceValue[k]
	}
	return score
}

// IsInsufficientMaterial returns true if neither side can checkmate:
// K v K, K+minor v K, or K+B v K+B with both bishops on one square color.
func (p *Position) IsInsufficientMaterial() bool {
	w, b := &p.pieces[0], &p.pieces[1]
	if w[Pawn]|b[Pawn]|w[Rook]|b[Rook]|w[Queen]|b[Queen] != 0 {
		return false
	}

	wMinors := w[Knight].PopCount() + w[Bishop].PopCount()
	bMinors := b[Knight].PopCount() + b[Bishop].PopCount()

	switch {
	case wMinors+bMinors == 0:
		return true
	case wMinors+bMinors == 1:
		return true
	case wMinors == 1 && bMinors == 1 && w[Knight]|b[Knight] == 0:
		bishops := w[Bishop] | b[Bishop]
		return bishops&lightSquares == 0 || bishops&^lightSquares == 0
	}
	return false
}
