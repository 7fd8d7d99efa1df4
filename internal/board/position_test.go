package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	pos := NewPosition()
	require.NoError(t, pos.Validate())

	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, AllCastling, pos.CastlingRights)
	assert.Equal(t, NoSquare, pos.EnPassant)
	assert.Equal(t, 0, pos.HalfMoveClock)
	assert.Equal(t, 1, pos.FullMoveNumber)
	assert.Empty(t, pos.History())

	assert.Equal(t, NewPiece(White, King), pos.PieceAt(E1))
	assert.Equal(t, NewPiece(Black, Queen), pos.PieceAt(D8))
	assert.Equal(t, NoPiece, pos.PieceAt(E4))
	assert.Equal(t, 32, pos.AllOccupied().PopCount())
	assert.Equal(t, 0, pos.Material())
	assert.Equal(t, pos.computeHash(), pos.Hash)
}

func TestStartingMoveCounts(t *testing.T) {
	pos := NewPosition()
	assert.Len(t, pos.LegalMovesFor(White), 20)
	assert.Empty(t, pos.LegalMovesFor(Black))
	assert.Empty(t, pos.LegalMoves(E7))
	assert.False(t, pos.IsLegal(E7, E5))
	assert.False(t, pos.IsLegal(E4, E5))
}

func TestPseudoLegalTargets(t *testing.T) {
	pos := NewPosition()
	assert.Equal(t, BitboardOf(E3, E4), pos.PseudoLegalTargets(E2))
	assert.Equal(t, BitboardOf(A3, C3), pos.PseudoLegalTargets(B1))
	assert.Equal(t, Empty, pos.PseudoLegalTargets(A1))
	assert.Equal(t, Empty, pos.PseudoLegalTargets(E4))
	assert.Equal(t, BitboardOf(E6, E5), pos.PseudoLegalTargets(E7))
}

func TestKingPawn(t *testing.T) {
	pos := NewPosition()
	before := pos.Snapshot()
	_, ok := pos.LastMove()
	assert.False(t, ok)

	play(t, pos, "e2e4")

	last, ok := pos.LastMove()
	require.True(t, ok)
	assert.Equal(t, NewMove(E2, E4), last.Move)

	assert.Equal(t, NewPiece(White, Pawn), pos.PieceAt(E4))
	assert.Equal(t, NoPiece, pos.PieceAt(E2))
	assert.Equal(t, Black, pos.SideToMove)
	assert.Equal(t, E3, pos.EnPassant)
	assert.Len(t, pos.History(), 1)
	assert.Equal(t, pos.computeHash(), pos.Hash)

	// Only the two touched squares changed.
	after := pos.Snapshot()
	var changed []Square
	for sq := A1; sq <= H8; sq++ {
		if before.Squares[sq] != after.Squares[sq] {
			changed = append(changed, sq)
		}
	}
	assert.Equal(t, []Square{E2, E4}, changed)
}

func TestAlternationAndInvariants(t *testing.T) {
	pos := NewPosition()
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5c6", "d7c6", "e1g1", "f7f6"}
	for i, s := range moves {
		mover := pos.SideToMove
		play(t, pos, s)
		assert.Equal(t, mover.Other(), pos.SideToMove, s)
		assert.Len(t, pos.History(), i+1, s)
		require.NoError(t, pos.Validate(), s)
		assert.Equal(t, pos.computeHash(), pos.Hash, s)
	}

	history := pos.History()
	assert.Equal(t, NewPiece(White, Bishop), history[6].Mover)
	assert.Equal(t, NewPiece(Black, Knight), history[6].Captured)
	assert.Equal(t, 7, history[6].Ply)
	assert.Equal(t, 6, pos.FullMoveNumber)
}

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	play(t, pos, "f2f3", "e7e5", "g2g4", "d8h4")

	assert.True(t, pos.InCheck(White))
	assert.True(t, pos.IsCheckmate())
	assert.False(t, pos.IsStalemate())
	assert.Empty(t, pos.LegalMovesFor(White))
	assert.Equal(t, H4.Index(), pos.Checkers().LSB().Index())
}

func TestBackRankMate(t *testing.T) {
	pos := fromDiagram(t, Black, NoCastling,
		"R......k",
		"......pp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K.......",
	)
	assert.True(t, pos.IsCheckmate())
}

func TestStalemate(t *testing.T) {
	pos := fromDiagram(t, Black, NoCastling,
		".......k",
		".....Q..",
		"......K.",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	assert.False(t, pos.InCheck(Black))
	assert.True(t, pos.IsStalemate())
	assert.False(t, pos.IsCheckmate())
}

func TestEnPassant(t *testing.T) {
	pos := NewPosition()
	play(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")
	assert.Equal(t, D6, pos.EnPassant)

	m, ok := pos.FindMove(E5, D6, NoKind)
	require.True(t, ok)
	assert.True(t, m.IsEnPassant())

	require.NoError(t, pos.Apply(m))
	assert.Equal(t, NewPiece(White, Pawn), pos.PieceAt(D6))
	assert.Equal(t, NoPiece, pos.PieceAt(D5))
	assert.Equal(t, NoPiece, pos.PieceAt(E5))
	assert.Equal(t, NewPiece(Black, Pawn), pos.History()[4].Captured)
	assert.Equal(t, pos.computeHash(), pos.Hash)
}

func TestEnPassantExpires(t *testing.T) {
	pos := NewPosition()
	play(t, pos, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "h7h6")
	assert.False(t, pos.IsLegal(E5, D6))
}

func TestCastlingKingSide(t *testing.T) {
	pos := NewPosition()
	play(t, pos, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")

	require.True(t, pos.IsLegal(E1, G1))
	m, ok := pos.FindMove(E1, G1, NoKind)
	require.True(t, ok)
	assert.True(t, m.IsCastling())

	require.NoError(t, pos.Apply(m))
	assert.Equal(t, NewPiece(White, King), pos.PieceAt(G1))
	assert.Equal(t, NewPiece(White, Rook), pos.PieceAt(F1))
	assert.Equal(t, NoPiece, pos.PieceAt(H1))
	assert.Equal(t, NoPiece, pos.PieceAt(E1))
	assert.False(t, pos.CastlingRights.CanCastle(White, true))
	assert.False(t, pos.CastlingRights.CanCastle(White, false))
	assert.True(t, pos.CastlingRights.CanCastle(Black, true))
}

func TestCastlingQueenSide(t *testing.T) {
	pos := fromDiagram(t, Black, AllCastling,
		"r...k..r",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"R...K..R",
	)
	play(t, pos, "e8c8")
	assert.Equal(t, NewPiece(Black, King), pos.PieceAt(C8))
	assert.Equal(t, NewPiece(Black, Rook), pos.PieceAt(D8))
	assert.Equal(t, WhiteKingSideCastle|WhiteQueenSideCastle, pos.CastlingRights)
}

func TestCastlingThroughAttack(t *testing.T) {
	pos := fromDiagram(t, White, WhiteKingSideCastle|WhiteQueenSideCastle,
		"....kr..",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K..R",
	)
	assert.False(t, pos.IsLegal(E1, G1), "f1 is attacked")
	assert.True(t, pos.IsLegal(E1, C1))
	assert.True(t, pos.AttacksSquare(F1, Black))
}

func TestCastlingOutOfCheck(t *testing.T) {
	pos := fromDiagram(t, White, WhiteKingSideCastle,
		"....r.k.",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K..R",
	)
	assert.True(t, pos.InCheck(White))
	assert.False(t, pos.IsLegal(E1, G1))
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	pos := fromDiagram(t, Black, AllCastling,
		"r...k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K..R",
	)
	play(t, pos, "a8a1")
	assert.False(t, pos.CastlingRights.CanCastle(White, false))
	assert.False(t, pos.CastlingRights.CanCastle(Black, false))
	assert.True(t, pos.CastlingRights.CanCastle(White, true))
	assert.True(t, pos.CastlingRights.CanCastle(Black, true))
}

func TestPromotion(t *testing.T) {
	pos := fromDiagram(t, White, NoCastling,
		"...k....",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
	moves := moveStrings(pos.LegalMoves(A7))
	assert.Equal(t, []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r"}, moves)

	m, ok := pos.FindMove(A7, A8, NoKind)
	require.True(t, ok)
	assert.Equal(t, Queen, m.Promotion)

	m, ok = pos.FindMove(A7, A8, Knight)
	require.True(t, ok)
	require.NoError(t, pos.Apply(m))
	assert.Equal(t, NewPiece(White, Knight), pos.PieceAt(A8))
	assert.Zero(t, pos.Pieces(White, Pawn))
}

func TestPinnedPieceCannotMove(t *testing.T) {
	pos := fromDiagram(t, White, NoCastling,
		"....r..k",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....N...",
		"....K...",
	)
	assert.NotZero(t, pos.PseudoLegalTargets(E2))
	assert.Empty(t, pos.LegalMoves(E2))
}

func TestIllegalApplyLeavesStateUnchanged(t *testing.T) {
	pos := NewPosition()
	play(t, pos, "e2e4", "e7e5")
	before := pos.Snapshot()
	hist := pos.History()

	for _, m := range []Move{
		NewMove(E4, E5), // blocked pawn
		NewMove(D1, D8), // through pieces
		NewMove(E5, E4), // not your turn
		NewMove(A3, A4), // empty square
		NewCastling(E1, G1),
	} {
		err := pos.Apply(m)
		assert.ErrorIs(t, err, ErrNotLegal, m.String())
	}

	if diff := cmp.Diff(before, pos.Snapshot(), cmpopts.EquateComparable(Piece{})); diff != "" {
		t.Errorf("snapshot changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, hist, pos.History())
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewPosition()
	play(t, pos, "d2d4")
	cp := pos.Copy()
	play(t, cp, "d7d5")

	assert.Len(t, pos.History(), 1)
	assert.Len(t, cp.History(), 2)
	assert.Equal(t, NoPiece, pos.PieceAt(D5))
}

func TestValidateDetectsCorruption(t *testing.T) {
	pos := NewPosition()
	pos.removePiece(E8)
	assert.ErrorIs(t, pos.Validate(), ErrInvariantViolation)

	pos = NewPosition()
	pos.squares[E4] = NewPiece(White, Queen)
	assert.ErrorIs(t, pos.Validate(), ErrInvariantViolation)
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want bool
	}{
		{"bare kings", []string{"....k...", "........", "........", "........", "........", "........", "........", "....K..."}, true},
		{"king and knight", []string{"....k...", "........", "........", "........", "........", "........", "........", "....KN.."}, true},
		{"same colored bishops", []string{"....kb..", "........", "........", "........", "........", "........", "........", "..B.K..."}, true},
		{"opposite colored bishops", []string{"....k.b.", "........", "........", "........", "........", "........", "........", "..B.K..."}, false},
		{"pawn", []string{"....k...", "........", "........", "........", "........", "........", "P.......", "....K..."}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := fromDiagram(t, White, NoCastling, tc.rows...)
			assert.Equal(t, tc.want, pos.IsInsufficientMaterial())
		})
	}
}

func TestRepetitionRestoresHash(t *testing.T) {
	pos := NewPosition()
	start := pos.Hash
	play(t, pos, "g1f3", "g8f6", "f3g1", "f6g8")
	assert.Equal(t, start, pos.Hash)
}
