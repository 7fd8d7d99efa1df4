package board

// Ray directions, indexed into rays. The first four step toward higher
// square indices, so the nearest blocker on them is the LSB.
const (
	dirNorth = iota
	dirNorthEast
	dirEast
	dirNorthWest
	dirSouth
	dirSouthWest
	dirWest
	dirSouthEast
	numDirs
)

var dirSteps = [numDirs][2]int{
	dirNorth:     {0, 1},
	dirNorthEast: {1, 1},
	dirEast:      {1, 0},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirSouthWest: {-1, -1},
	dirWest:      {-1, 0},
	dirSouthEast: {1, -1},
}

var (
	rookDirs   = []int{dirNorth, dirEast, dirSouth, dirWest}
	bishopDirs = []int{dirNorthEast, dirNorthWest, dirSouthWest, dirSouthEast}
)

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [color index][Square]

	// rays[dir][sq] holds every square from sq (exclusive) to the edge.
	rays [numDirs][64]Bitboard
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initRays()
}

func initKnightAttacks() {
	offsets := [8][2]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}, {2, 1}, {-2, 1}, {2, -1}, {-2, -1}}
	for sq := A1; sq <= H8; sq++ {
		var attacks Bitboard
		for _, o := range offsets {
			if to := sq.offset(o[0], o[1]); to != NoSquare {
				attacks |= SquareBB(to)
			}
		}
		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White.index()][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black.index()][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initRays() {
	for dir := 0; dir < numDirs; dir++ {
		df, dr := dirSteps[dir][0], dirSteps[dir][1]
		for sq := A1; sq <= H8; sq++ {
			var ray Bitboard
			for to := sq.offset(df, dr); to != NoSquare; to = to.offset(df, dr) {
				ray |= SquareBB(to)
			}
			rays[dir][sq] = ray
		}
	}
}

// rayAttacks returns the squares reached from sq along dir, stopping at
// (and including) the first occupied square.
func rayAttacks(sq Square, occupied Bitboard, dir int) Bitboard {
	attacks := rays[dir][sq]
	blockers := attacks & occupied
	if blockers == 0 {
		return attacks
	}
	var blocker Square
	if dir < dirSouth {
		blocker = blockers.LSB()
	} else {
		blocker = blockers.MSB()
	}
	return attacks &^ rays[dir][blocker]
}

func slidingAttacks(sq Square, occupied Bitboard, dirs []int) Bitboard {
	var attacks Bitboard
	for _, dir := range dirs {
		attacks |= rayAttacks(sq, occupied, dir)
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c.index()][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, bishopDirs)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, rookDirs)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// attackersOf returns the pieces of color c in pieces that attack sq,
// given the occupancy used to block sliding rays.
func attackersOf(pieces *[2][7]Bitboard, sq Square, c Color, occupied Bitboard) Bitboard {
	own := &pieces[c.index()]
	return (pawnAttacks[c.Other().index()][sq] & own[Pawn]) |
		(knightAttacks[sq] & own[Knight]) |
		(kingAttacks[sq] & own[King]) |
		(BishopAttacks(sq, occupied) & (own[Bishop] | own[Queen])) |
		(RookAttacks(sq, occupied) & (own[Rook] | own[Queen]))
}

// AttackersByColor returns a bitboard of pieces of the given color attacking a square.
func (p *Position) AttackersByColor(sq Square, c Color) Bitboard {
	return attackersOf(&p.pieces, sq, c, p.AllOccupied())
}
