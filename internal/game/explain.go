package game

import "github.com/hailam/chessrules/internal/board"

// Explain reports why moving from -> to would be rejected, or ReasonNone if
// the move is legal.
func (g *Game) Explain(from, to string) (Reason, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return ReasonNone, err
	}
	if g.state.IsTerminal() {
		return ReasonGameOver, nil
	}

	piece := g.pos.PieceAt(src)
	if piece.IsEmpty() {
		return ReasonNoPiece, nil
	}
	if piece.Color() != g.pos.SideToMove {
		return ReasonNotYourTurn, nil
	}
	if _, ok := g.resolve(src, dst, board.NoKind); ok {
		return ReasonNone, nil
	}

	dest := g.pos.PieceAt(dst)
	if !dest.IsEmpty() && dest.Color() == piece.Color() {
		return ReasonBlockedByOwnPiece, nil
	}

	// Generated by the movement pattern but filtered: the king would be exposed.
	if g.pos.PseudoLegalTargets(src).IsSet(dst) {
		return ReasonWouldLeaveKingInCheck, nil
	}
	return ReasonInvalidPieceMovement, nil
}
