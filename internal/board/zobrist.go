package board

// Zobrist keys identify positions for repetition detection.
// Generated from a fixed seed so hashes are stable across runs and can be
// stored alongside saved games.
var (
	zobristPiece      [2][7][64]uint64 // [color index][Kind][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // All 16 castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	rng := xorshift{state: 0x98F107A2BEEF1234}

	for ci := 0; ci < 2; ci++ {
		for k := Pawn; k <= King; k++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[ci][k][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// xorshift is an xorshift64* generator.
type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

// computeHash builds the hash of the position from scratch.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		if piece := p.squares[sq]; !piece.IsEmpty() {
			h ^= zobristPiece[piece.Color().index()][piece.Kind()][sq]
		}
	}
	h ^= zobristCastling[p.CastlingRights&AllCastling]
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
