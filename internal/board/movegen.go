package board

// PseudoLegalMoves returns every move the piece on sq could make by its
// movement pattern alone, ignoring whether the mover's king would be left in
// check. Castling is the exception: its passing-through-check conditions are
// part of the pattern and are checked here. Nil for an empty square.
func (p *Position) PseudoLegalMoves(sq Square) []Move {
	piece := p.PieceAt(sq)
	if piece.IsEmpty() {
		return nil
	}
	moves := make([]Move, 0, 32)
	return p.appendPieceMoves(moves, sq, piece)
}

// PseudoLegalTargets returns the destination set of PseudoLegalMoves(sq).
func (p *Position) PseudoLegalTargets(sq Square) Bitboard {
	var targets Bitboard
	for _, m := range p.PseudoLegalMoves(sq) {
		targets |= SquareBB(m.To)
	}
	return targets
}

// PseudoLegalMovesFor returns the pseudo-legal moves of every piece of color c.
func (p *Position) PseudoLegalMovesFor(c Color) []Move {
	moves := make([]Move, 0, 64)
	own := p.Occupied(c)
	for own != 0 {
		sq := own.PopLSB()
		moves = p.appendPieceMoves(moves, sq, p.squares[sq])
	}
	return moves
}

func (p *Position) appendPieceMoves(moves []Move, from Square, piece Piece) []Move {
	us := piece.Color()
	occupied := p.AllOccupied()
	notOwn := ^p.Occupied(us)

	switch piece.Kind() {
	case Pawn:
		return p.appendPawnMoves(moves, from, us)
	case Knight:
		return appendTargets(moves, from, KnightAttacks(from)&notOwn)
	case Bishop:
		return appendTargets(moves, from, BishopAttacks(from, occupied)&notOwn)
	case Rook:
		return appendTargets(moves, from, RookAttacks(from, occupied)&notOwn)
	case Queen:
		return appendTargets(moves, from, QueenAttacks(from, occupied)&notOwn)
	case King:
		moves = appendTargets(moves, from, KingAttacks(from)&notOwn)
		return p.appendCastlingMoves(moves, from, us)
	}
	return moves
}

func appendTargets(moves []Move, from Square, targets Bitboard) []Move {
	for targets != 0 {
		moves = append(moves, NewMove(from, targets.PopLSB()))
	}
	return moves
}

// appendPawnMoves generates pushes, captures, en passant and promotions for
// the pawn on from.
func (p *Position) appendPawnMoves(moves []Move, from Square, us Color) []Move {
	bb := SquareBB(from)
	empty := ^p.AllOccupied()
	enemies := p.Occupied(us.Other())

	var push1, push2, promotionRank Bitboard
	if us == White {
		push1 = bb.North() & empty
		if from.Rank() == 1 {
			push2 = push1.North() & empty
		}
		promotionRank = Rank8
	} else {
		push1 = bb.South() & empty
		if from.Rank() == 6 {
			push2 = push1.South() & empty
		}
		promotionRank = Rank1
	}

	captures := PawnAttacks(from, us) & enemies
	targets := push1 | push2 | captures

	for promo := targets & promotionRank; promo != 0; {
		moves = appendPromotions(moves, from, promo.PopLSB())
	}
	moves = appendTargets(moves, from, targets&^promotionRank)

	if p.EnPassant != NoSquare && PawnAttacks(from, us).IsSet(p.EnPassant) {
		moves = append(moves, NewEnPassant(from, p.EnPassant))
	}
	return moves
}

// appendPromotions adds all four promotion moves.
func appendPromotions(moves []Move, from, to Square) []Move {
	return append(moves,
		NewPromotion(from, to, Queen),
		NewPromotion(from, to, Rook),
		NewPromotion(from, to, Bishop),
		NewPromotion(from, to, Knight),
	)
}

// appendCastlingMoves adds castling for the king on from. Rights must be
// intact, the squares between king and rook empty, and the king may not
// start on, pass through or land on an attacked square.
func (p *Position) appendCastlingMoves(moves []Move, from Square, us Color) []Move {
	home := E1
	if us == Black {
		home = E8
	}
	if from != home || p.AttacksSquare(from, us.Other()) {
		return moves
	}

	them := us.Other()
	occupied := p.AllOccupied()
	rank := home.Rank()
	rook := NewPiece(us, Rook)

	if p.CastlingRights.CanCastle(us, true) && p.squares[NewSquare(7, rank)] == rook {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		if occupied&BitboardOf(f, g) == 0 && !p.AttacksSquare(f, them) && !p.AttacksSquare(g, them) {
			moves = append(moves, NewCastling(from, g))
		}
	}

	if p.CastlingRights.CanCastle(us, false) && p.squares[NewSquare(0, rank)] == rook {
		b, c, d := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		if occupied&BitboardOf(b, c, d) == 0 && !p.AttacksSquare(d, them) && !p.AttacksSquare(c, them) {
			moves = append(moves, NewCastling(from, c))
		}
	}
	return moves
}
