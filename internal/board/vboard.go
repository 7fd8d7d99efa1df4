package board

// VBoard is a lightweight board for move simulation.
// Unlike Position, it only carries what attack detection needs, so the
// legality filter can try a move without touching the live position.
type VBoard struct {
	pieces   [2][7]Bitboard
	occupied [2]Bitboard
	kings    [2]Square
}

// NewVBoard creates a VBoard from a Position.
func NewVBoard(p *Position) VBoard {
	return VBoard{
		pieces:   p.pieces,
		occupied: p.occupied,
		kings:    p.kingSquare,
	}
}

// ApplyMove plays m for us on the VBoard (no validation, no hash update).
func (v *VBoard) ApplyMove(m Move, us Color) {
	own, opp := us.index(), us.Other().index()
	fromBB, toBB := SquareBB(m.From), SquareBB(m.To)

	var kind Kind
	for k := Pawn; k <= King; k++ {
		if v.pieces[own][k]&fromBB != 0 {
			kind = k
			break
		}
	}
	if kind == NoKind {
		return
	}

	capBB := toBB
	if m.IsEnPassant() {
		capBB = SquareBB(NewSquare(m.To.File(), m.From.Rank()))
	}
	for k := Pawn; k <= King; k++ {
		v.pieces[opp][k] &^= capBB
	}
	v.occupied[opp] &^= capBB

	moveBB := fromBB | toBB
	v.pieces[own][kind] ^= moveBB
	v.occupied[own] ^= moveBB

	if kind == King {
		v.kings[own] = m.To
	}

	if m.IsPromotion() {
		v.pieces[own][Pawn] &^= toBB
		v.pieces[own][m.Promotion] |= toBB
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(m.From, m.To)
		rookBB := SquareBB(rookFrom) | SquareBB(rookTo)
		v.pieces[own][Rook] ^= rookBB
		v.occupied[own] ^= rookBB
	}
}

// IsKingAttacked reports whether the king of color c is attacked.
func (v *VBoard) IsKingAttacked(c Color) bool {
	ksq := v.kings[c.index()]
	if ksq == NoSquare {
		return false
	}
	return attackersOf(&v.pieces, ksq, c.Other(), v.occupied[0]|v.occupied[1]) != 0
}
