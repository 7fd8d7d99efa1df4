package game

// fiftyMovePlies is the half-move clock value at which the fifty-move rule applies.
const fiftyMovePlies = 100

// drawReason returns the first draw rule the current position satisfies.
// Repetition is judged by position hash, which includes side to move,
// castling rights and the en passant file.
func (g *Game) drawReason() DrawReason {
	switch {
	case g.repetitions[g.pos.Hash] >= 3:
		return DrawThreefoldRepetition
	case g.pos.HalfMoveClock >= fiftyMovePlies:
		return DrawFiftyMoveRule
	case g.pos.IsInsufficientMaterial():
		return DrawInsufficientMaterial
	}
	return DrawNone
}

// Repetitions returns how many times the current position has occurred.
func (g *Game) Repetitions() int {
	return g.repetitions[g.pos.Hash]
}
