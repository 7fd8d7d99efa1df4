// Package game implements the controller a board front end talks to: it owns
// the position of one session, answers tile queries, commits legal moves and
// tracks check, checkmate, stalemate and draws.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/hailam/chessrules/internal/board"
)

// ErrIllegalMove is returned where a rejected move has to be an error, such
// as when replaying a stored move log.
var ErrIllegalMove = errors.New("illegal move")

// Game is a single two-player session. It is not safe for concurrent use;
// analysis should run on a Clone.
type Game struct {
	id      uuid.UUID
	pos     *board.Position
	state   State
	winner  board.Color
	draw    DrawReason
	started time.Time

	// repetitions counts how often each position hash has occurred.
	repetitions map[uint64]int

	autoDraw  bool
	promotion board.Kind
	log       *zap.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithAutoDraw enables or disables automatic draws by threefold repetition,
// the fifty-move rule and insufficient material. Enabled by default.
func WithAutoDraw(enabled bool) Option {
	return func(g *Game) {
		g.autoDraw = enabled
	}
}

// WithDefaultPromotion sets the piece Move promotes to. Queen by default.
func WithDefaultPromotion(k board.Kind) Option {
	return func(g *Game) {
		switch k {
		case board.Queen, board.Rook, board.Bishop, board.Knight:
			g.promotion = k
		}
	}
}

// WithID sets the session id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(g *Game) {
		g.id = id
	}
}

// New starts a game from the initial position with White to move.
func New(opts ...Option) *Game {
	g := &Game{
		id:        uuid.New(),
		autoDraw:  true,
		promotion: board.Queen,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(zap.Stringer("session", g.id))
	g.reset()
	return g
}

func (g *Game) reset() {
	g.pos = board.NewPosition()
	g.state = StateAwaitingMove
	g.winner = board.NoColor
	g.draw = DrawNone
	g.started = time.Now()
	g.repetitions = map[uint64]int{g.pos.Hash: 1}
}

// Reset starts over from the initial position, keeping the session id.
func (g *Game) Reset() {
	g.reset()
	g.log.Info("new game")
}

// ID returns the session id.
func (g *Game) ID() uuid.UUID {
	return g.id
}

// State returns the phase of the game.
func (g *Game) State() State {
	return g.state
}

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.pos.SideToMove
}

// Winner returns the winner after checkmate, NoColor otherwise.
func (g *Game) Winner() board.Color {
	return g.winner
}

// DrawReason returns the rule that drew the game, DrawNone otherwise.
func (g *Game) DrawReason() DrawReason {
	return g.draw
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position {
	return g.pos.Copy()
}

// Snapshot returns a comparable copy of the observable board state.
func (g *Game) Snapshot() board.Snapshot {
	return g.pos.Snapshot()
}

// History returns the committed moves, oldest first.
func (g *Game) History() []board.Record {
	return g.pos.History()
}

// Moves returns the committed moves in coordinate form ("e2e4", "e7e8q").
func (g *Game) Moves() []string {
	history := g.pos.History()
	moves := make([]string, len(history))
	for i, r := range history {
		moves[i] = r.String()
	}
	return moves
}

// Clone returns an independent copy of the game for analysis.
func (g *Game) Clone() *Game {
	c := *g
	c.pos = g.pos.Copy()
	c.repetitions = maps.Clone(g.repetitions)
	return &c
}

// GetTile returns the piece on tile, or board.NoPiece when it is empty.
func (g *Game) GetTile(tile string) (board.Piece, error) {
	sq, err := board.ParseSquare(tile)
	if err != nil {
		return board.NoPiece, err
	}
	return g.pos.PieceAt(sq), nil
}

// IsMoveable reports whether tile holds a piece of the side to move that has
// at least one legal move. It is false once the game is over.
func (g *Game) IsMoveable(tile string) (bool, error) {
	sq, err := board.ParseSquare(tile)
	if err != nil {
		return false, err
	}
	if g.state.IsTerminal() {
		return false, nil
	}
	return len(g.pos.LegalMoves(sq)) > 0, nil
}

// IsLegal reports whether moving the piece on from to to is legal.
// Dropping the king on its own rook counts as castling.
func (g *Game) IsLegal(from, to string) (bool, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return false, err
	}
	if g.state.IsTerminal() {
		return false, nil
	}
	_, ok := g.resolve(src, dst, board.NoKind)
	return ok, nil
}

// LegalTargets returns the squares the piece on tile can legally move to,
// in the same terms as IsLegal: a king that can castle also lists the
// castling rook's square.
func (g *Game) LegalTargets(tile string) ([]board.Square, error) {
	sq, err := board.ParseSquare(tile)
	if err != nil {
		return nil, err
	}
	if g.state.IsTerminal() {
		return nil, nil
	}
	targets := g.pos.LegalTargets(sq)
	for _, m := range g.pos.LegalMoves(sq) {
		if m.IsCastling() {
			targets |= board.SquareBB(castlingRookSquare(m))
		}
	}
	return targets.Squares(), nil
}

// castlingRookSquare returns the home square of the rook a castling move
// uses, which is also where the king may be dropped to request it.
func castlingRookSquare(m board.Move) board.Square {
	if m.To.File() > m.From.File() {
		return board.NewSquare(7, m.From.Rank())
	}
	return board.NewSquare(0, m.From.Rank())
}

// Move commits the move from -> to if it is legal, promoting to the default
// piece. An illegal move is reported as StatusIllegalMove with a nil error
// and leaves the game untouched. Errors are returned only for malformed tiles.
func (g *Game) Move(from, to string) (Status, error) {
	return g.MovePromote(from, to, board.NoKind)
}

// MovePromote is Move with an explicit promotion piece. promo is ignored
// for moves that do not promote; NoKind selects the default piece.
func (g *Game) MovePromote(from, to string, promo board.Kind) (Status, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return Status{Code: StatusIllegalMove}, err
	}
	return g.play(src, dst, promo), nil
}

func parsePair(from, to string) (board.Square, board.Square, error) {
	src, err := board.ParseSquare(from)
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	dst, err := board.ParseSquare(to)
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	return src, dst, nil
}

// resolve maps a requested (from, to) pair onto a legal move. Besides the
// literal match it accepts the king dropped on its own rook's home square
// as castling toward that rook.
func (g *Game) resolve(from, to board.Square, promo board.Kind) (board.Move, bool) {
	if promo == board.NoKind {
		promo = g.promotion
	}
	if m, ok := g.pos.FindMove(from, to, promo); ok {
		return m, true
	}

	mover := g.pos.PieceAt(from)
	target := g.pos.PieceAt(to)
	if mover.Kind() != board.King || target != board.NewPiece(mover.Color(), board.Rook) || from.File() != 4 {
		return board.NoMove, false
	}
	for _, m := range g.pos.LegalMoves(from) {
		if m.IsCastling() && castlingRookSquare(m) == to {
			return m, true
		}
	}
	return board.NoMove, false
}

func (g *Game) play(from, to board.Square, promo board.Kind) Status {
	if g.state.IsTerminal() {
		g.log.Debug("move rejected, game over",
			zap.Stringer("from", from), zap.Stringer("to", to), zap.Stringer("state", g.state))
		return Status{Code: StatusIllegalMove}
	}

	m, ok := g.resolve(from, to, promo)
	if !ok {
		g.log.Debug("illegal move rejected",
			zap.Stringer("from", from), zap.Stringer("to", to),
			zap.Stringer("side", g.pos.SideToMove))
		return Status{Code: StatusIllegalMove}
	}

	g.commit(m)
	return g.evaluate()
}

// commit applies a resolved legal move. A failure here means the board is
// corrupt, which is unrecoverable.
func (g *Game) commit(m board.Move) {
	side := g.pos.SideToMove
	if err := g.pos.Apply(m); err != nil {
		g.log.Error("invariant violation", zap.Stringer("move", m), zap.Error(err))
		panic(fmt.Errorf("commit %s: %w", m, err))
	}
	g.repetitions[g.pos.Hash]++

	g.log.Debug("move committed",
		zap.Stringer("move", m),
		zap.Stringer("flag", m.Flag),
		zap.Stringer("side", side),
		zap.Int("ply", g.pos.Plies()))
}

// evaluate updates the state after a committed move and reports it.
func (g *Game) evaluate() Status {
	us := g.pos.SideToMove
	inCheck := g.pos.InCheck(us)
	hasMoves := g.pos.HasLegalMoves(us)

	var status Status
	switch {
	case inCheck && !hasMoves:
		g.state = StateCheckmate
		g.winner = us.Other()
		status = Status{Code: StatusCheckmate, Winner: g.winner}
	case !hasMoves:
		g.state = StateStalemate
		status = Status{Code: StatusStalemate}
	case g.autoDraw && g.drawReason() != DrawNone:
		g.state = StateDraw
		g.draw = g.drawReason()
		status = Status{Code: StatusDraw, DrawReason: g.draw}
	case inCheck:
		g.state = StateCheck
		status = Status{Code: StatusCheck}
	default:
		g.state = StateAwaitingMove
		status = Status{Code: StatusOK}
	}

	if g.state.IsTerminal() {
		g.log.Info("game over",
			zap.Stringer("state", g.state),
			zap.Stringer("winner", g.winner),
			zap.Stringer("reason", g.draw),
			zap.Int("plies", g.pos.Plies()),
			zap.Duration("elapsed", time.Since(g.started)))
	}
	return status
}
