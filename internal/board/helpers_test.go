package board

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// fromDiagram builds a position from eight rows of eight characters, rank 8
// first. Uppercase letters are white pieces, lowercase black, '.' empty.
func fromDiagram(t *testing.T, side Color, cr CastlingRights, rows ...string) *Position {
	t.Helper()
	require.Len(t, rows, 8, "diagram needs eight rows")

	pos := EmptyPosition()
	for i, row := range rows {
		require.Len(t, row, 8, "row %d", i)
		rank := 7 - i
		for file := 0; file < 8; file++ {
			ch := row[file]
			if ch == '.' {
				continue
			}
			color := White
			if ch >= 'a' {
				color = Black
				ch -= 'a' - 'A'
			}
			kind, ok := map[byte]Kind{'P': Pawn, 'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King}[ch]
			require.True(t, ok, "unknown piece %q", row[file])
			pos.Put(NewSquare(file, rank), NewPiece(color, kind))
		}
	}
	pos.SideToMove = side
	pos.CastlingRights = cr
	require.NoError(t, pos.Refresh())
	return pos
}

// play applies moves given in coordinate form, failing the test on the first
// one that is rejected.
func play(t *testing.T, pos *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		from, to, promo, err := ParseMove(s)
		require.NoError(t, err)
		m, ok := pos.FindMove(from, to, promo)
		require.True(t, ok, "move %s not legal in\n%s", s, pos)
		require.NoError(t, pos.Apply(m), "apply %s", s)
	}
}

// moveStrings returns the sorted coordinate text of moves.
func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	slices.Sort(out)
	return out
}

var kiwipete = []string{
	"r...k..r",
	"p.ppqpb.",
	"bn..pnp.",
	"...PN...",
	".p..P...",
	"..N..Q.p",
	"PPPBBPPP",
	"R...K..R",
}
