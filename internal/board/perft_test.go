package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			assert.Equal(t, tc.expected, Perft(pos, tc.depth))
		})
	}
}

// TestPerftKiwipete tests the Kiwipete position: castling both ways, en
// passant, promotions and pins all appear within three plies.
func TestPerftKiwipete(t *testing.T) {
	pos := fromDiagram(t, White, AllCastling, kiwipete...)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			assert.Equal(t, tc.expected, Perft(pos, tc.depth))
		})
	}
}

// TestPerftRookEndgame covers horizontally pinned en passant captures.
func TestPerftRookEndgame(t *testing.T) {
	pos := fromDiagram(t, White, NoCastling,
		"........",
		"..p.....",
		"...p....",
		"KP.....r",
		".R...p.k",
		"........",
		"....P.P.",
		"........",
	)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			assert.Equal(t, tc.expected, Perft(pos, tc.depth))
		})
	}
}

// TestPerftPromotions covers promotions with capture and castling under fire.
func TestPerftPromotions(t *testing.T) {
	pos := fromDiagram(t, White, BlackKingSideCastle|BlackQueenSideCastle,
		"r...k..r",
		"Pppp.ppp",
		".b...nbN",
		"nP......",
		"BBP.P...",
		"q....N..",
		"Pp.P..PP",
		"R..Q.RK.",
	)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			assert.Equal(t, tc.expected, Perft(pos, tc.depth))
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := NewPosition()
	div := Divide(pos, 3)

	assert.Len(t, div, 20)
	var total uint64
	for _, n := range div {
		total += n
	}
	assert.Equal(t, uint64(8902), total)
	assert.Equal(t, uint64(600), div["e2e4"])
}

func TestPerftDoesNotMutate(t *testing.T) {
	pos := fromDiagram(t, White, AllCastling, kiwipete...)
	before := pos.Snapshot()

	Perft(pos, 2)

	assert.Equal(t, before, pos.Snapshot())
}
