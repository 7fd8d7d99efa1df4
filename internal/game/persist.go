package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/storage"
)

// Result describes the finished game for statistics. ok is false while the
// game is still in progress.
func (g *Game) Result() (result storage.GameResult, ok bool) {
	result.Plies = g.pos.Plies()
	switch g.state {
	case StateCheckmate:
		result.Outcome = storage.OutcomeWhiteWins
		if g.winner == board.Black {
			result.Outcome = storage.OutcomeBlackWins
		}
		result.Reason = "checkmate"
	case StateStalemate:
		result.Outcome = storage.OutcomeDraw
		result.Reason = "stalemate"
	case StateDraw:
		result.Outcome = storage.OutcomeDraw
		result.Reason = g.draw.String()
	default:
		return result, false
	}
	return result, true
}

// Session returns the persistable form of the game.
func (g *Game) Session() *storage.Session {
	sess := &storage.Session{
		ID:        g.id,
		Moves:     g.Moves(),
		CreatedAt: g.started,
	}
	if result, ok := g.Result(); ok {
		sess.Result = result.Outcome.String()
		sess.Reason = result.Reason
	}
	return sess
}

// Save stores the game's move log under its session id.
func (g *Game) Save(store *storage.Storage) error {
	if err := store.SaveSession(g.Session()); err != nil {
		return err
	}
	g.log.Debug("game saved", zap.Int("plies", g.pos.Plies()))
	return nil
}

// Resume loads the session id from store and replays its moves from the
// initial position. A log that contains an illegal move fails with
// ErrIllegalMove.
func Resume(store *storage.Storage, id uuid.UUID, opts ...Option) (*Game, error) {
	sess, err := store.LoadSession(id)
	if err != nil {
		return nil, err
	}

	g, err := Replay(sess.Moves, append(opts, WithID(sess.ID))...)
	if err != nil {
		return nil, fmt.Errorf("resume %s: %w", id, err)
	}
	if !sess.CreatedAt.IsZero() {
		g.started = sess.CreatedAt
	}
	g.log.Info("game resumed", zap.Int("plies", g.pos.Plies()), zap.Stringer("state", g.state))
	return g, nil
}

// Replay builds a game by playing moves in coordinate form from the initial
// position. Automatic draws are only judged on the final position, so a log
// recorded with them disabled still replays when they are enabled.
func Replay(moves []string, opts ...Option) (*Game, error) {
	g := New(opts...)
	autoDraw := g.autoDraw
	g.autoDraw = false
	for i, s := range moves {
		from, to, promo, err := board.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if status := g.play(from, to, promo); status.Code == StatusIllegalMove {
			return nil, fmt.Errorf("move %d %s: %w", i+1, s, ErrIllegalMove)
		}
	}
	g.autoDraw = autoDraw
	if len(moves) > 0 && !g.state.IsTerminal() {
		g.evaluate()
	}
	return g, nil
}
