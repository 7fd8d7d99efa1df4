package board

// AttacksSquare returns true if any piece of color by attacks sq with its
// capture pattern. Pawns attack diagonally whether or not the square is
// occupied; castling never attacks.
func (p *Position) AttacksSquare(sq Square, by Color) bool {
	return p.AttackersByColor(sq, by) != 0
}

// InCheck returns true if the king of color c is attacked.
func (p *Position) InCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.AttacksSquare(ksq, c.Other())
}

// Checkers returns the pieces giving check to the side to move.
func (p *Position) Checkers() Bitboard {
	ksq := p.KingSquare(p.SideToMove)
	if ksq == NoSquare {
		return 0
	}
	return p.AttackersByColor(ksq, p.SideToMove.Other())
}

// LegalMoves returns the moves of the piece on sq that do not leave its own
// king attacked. Only the side to move has legal moves.
func (p *Position) LegalMoves(sq Square) []Move {
	piece := p.PieceAt(sq)
	if piece.IsEmpty() || piece.Color() != p.SideToMove {
		return nil
	}
	return p.filterLegal(p.PseudoLegalMoves(sq))
}

// LegalMovesFor returns every legal move of color c.
func (p *Position) LegalMovesFor(c Color) []Move {
	if c != p.SideToMove {
		return nil
	}
	return p.filterLegal(p.PseudoLegalMovesFor(c))
}

// LegalTargets returns the destination set of LegalMoves(sq).
func (p *Position) LegalTargets(sq Square) Bitboard {
	var targets Bitboard
	for _, m := range p.LegalMoves(sq) {
		targets |= SquareBB(m.To)
	}
	return targets
}

// filterLegal keeps the moves after which the mover's king is safe.
// The slice is filtered in place.
func (p *Position) filterLegal(moves []Move) []Move {
	us := p.SideToMove
	legal := moves[:0]
	for _, m := range moves {
		if p.isSafe(m, us) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p *Position) isSafe(m Move, us Color) bool {
	vb := NewVBoard(p)
	vb.ApplyMove(m, us)
	return !vb.IsKingAttacked(us)
}

// HasLegalMoves returns true if color c has at least one legal move.
func (p *Position) HasLegalMoves(c Color) bool {
	if c != p.SideToMove {
		return false
	}
	for _, m := range p.PseudoLegalMovesFor(c) {
		if p.isSafe(m, c) {
			return true
		}
	}
	return false
}

// IsLegal returns true if the piece on from may legally move to to. It is
// false when from is empty or holds a piece of the side not to move.
func (p *Position) IsLegal(from, to Square) bool {
	return p.LegalTargets(from).IsSet(to)
}

// FindMove resolves a (from, to) pair to the concrete legal move. For
// promotions promo selects the piece; NoKind means queen. promo is ignored
// for every other move.
func (p *Position) FindMove(from, to Square, promo Kind) (Move, bool) {
	if promo == NoKind {
		promo = Queen
	}
	for _, m := range p.LegalMoves(from) {
		if m.To != to {
			continue
		}
		if m.IsPromotion() && m.Promotion != promo {
			continue
		}
		return m, true
	}
	return NoMove, false
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove) && !p.HasLegalMoves(p.SideToMove)
}

// IsStalemate returns true if the side to move is not in check and has no legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove) && !p.HasLegalMoves(p.SideToMove)
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMovesFor(p.SideToMove)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		child := *p
		child.log = nil
		child.makeMove(m)
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by its
// coordinate text.
func Divide(p *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.LegalMovesFor(p.SideToMove) {
		child := *p
		child.log = nil
		child.makeMove(m)
		result[m.String()] = Perft(&child, depth-1)
	}
	return result
}
