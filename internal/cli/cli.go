// Package cli implements a line-oriented text front end for a game session.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

const maxPerftDepth = 6

// Shell reads commands and drives a game.Game with them.
type Shell struct {
	game  *game.Game
	store *storage.Storage // nil disables save, resume and stats
	opts  []game.Option
	out   io.Writer
	log   *zap.Logger
}

// New creates a shell writing to out. opts are used for every game the shell
// starts or resumes.
func New(out io.Writer, store *storage.Storage, logger *zap.Logger, opts ...game.Option) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		game:  game.New(opts...),
		store: store,
		opts:  opts,
		out:   out,
		log:   logger,
	}
}

// Game returns the current game.
func (s *Shell) Game() *game.Game {
	return s.game
}

// Run reads commands from in until "quit" or end of input.
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := s.Exec(cmd, args); err != nil {
			s.printf("error: %v\n", err)
			s.log.Debug("command failed", zap.String("cmd", cmd), zap.Error(err))
		}
	}
	return scanner.Err()
}

// Exec runs a single command.
func (s *Shell) Exec(cmd string, args []string) error {
	switch cmd {
	case "move", "m":
		return s.handleMove(args)
	case "tile":
		return s.handleTile(args)
	case "moves":
		return s.handleMoves(args)
	case "moveable":
		return s.handleMoveable(args)
	case "explain":
		return s.handleExplain(args)
	case "board", "d":
		s.printf("%s", s.game.Position())
	case "history":
		s.handleHistory()
	case "status":
		s.handleStatus()
	case "new":
		s.game = game.New(s.opts...)
		s.printf("new game %s\n", s.game.ID())
	case "save":
		return s.handleSave()
	case "resume":
		return s.handleResume(args)
	case "stats":
		return s.handleStats()
	case "perft":
		return s.handlePerft(args)
	case "help":
		s.printf("%s", helpText)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

const helpText = `commands:
  move <from> <to> [q|r|b|n]   move a piece (also: move e2e4)
  tile <sq>                    show the piece on a square
  moves <sq>                   list legal destinations
  moveable <sq>                can the piece on sq move?
  explain <from> <to>          why a move is rejected
  board | history | status
  new | save | resume [id] | stats
  perft <depth>
  quit
`

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// handleMove accepts "e2 e4", "e2 e4 q" and "e2e4"/"e7e8q".
func (s *Shell) handleMove(args []string) error {
	if err := needArgs(args, 1, "move <from> <to> [promotion]"); err != nil {
		return err
	}

	var from, to, promo string
	if len(args) == 1 {
		if len(args[0]) < 4 {
			return fmt.Errorf("usage: move <from> <to> [promotion]")
		}
		from, to, promo = args[0][:2], args[0][2:4], args[0][4:]
	} else {
		from, to = args[0], args[1]
		if len(args) > 2 {
			promo = args[2]
		}
	}

	kind := board.NoKind
	if promo != "" {
		var ok bool
		if kind, ok = board.KindFromChar(promo[0]); !ok || len(promo) != 1 {
			return fmt.Errorf("invalid promotion piece %q", promo)
		}
	}

	st, err := s.game.MovePromote(from, to, kind)
	if err != nil {
		return err
	}

	if st.Code == game.StatusIllegalMove {
		reason, _ := s.game.Explain(from, to)
		s.printf("illegal move %s%s: %s\n", from, to, reason)
		return nil
	}

	s.printf("%s\n", st)
	if s.game.State().IsTerminal() {
		s.recordResult()
	}
	return nil
}

func (s *Shell) recordResult() {
	if s.store == nil {
		return
	}
	result, ok := s.game.Result()
	if !ok {
		return
	}
	if err := s.store.RecordResult(result); err != nil {
		s.log.Warn("failed to record game result", zap.Error(err))
	}
	if err := s.game.Save(s.store); err != nil {
		s.log.Warn("failed to save finished game", zap.Error(err))
	}
}

func (s *Shell) handleTile(args []string) error {
	if err := needArgs(args, 1, "tile <square>"); err != nil {
		return err
	}
	p, err := s.game.GetTile(args[0])
	if err != nil {
		return err
	}
	s.printf("%s: %s\n", args[0], p.Name())
	return nil
}

func (s *Shell) handleMoves(args []string) error {
	if err := needArgs(args, 1, "moves <square>"); err != nil {
		return err
	}
	targets, err := s.game.LegalTargets(args[0])
	if err != nil {
		return err
	}
	names := make([]string, len(targets))
	for i, sq := range targets {
		names[i] = sq.String()
	}
	s.printf("%s: %s\n", args[0], strings.Join(names, " "))
	return nil
}

func (s *Shell) handleMoveable(args []string) error {
	if err := needArgs(args, 1, "moveable <square>"); err != nil {
		return err
	}
	ok, err := s.game.IsMoveable(args[0])
	if err != nil {
		return err
	}
	s.printf("%s: %t\n", args[0], ok)
	return nil
}

func (s *Shell) handleExplain(args []string) error {
	if err := needArgs(args, 2, "explain <from> <to>"); err != nil {
		return err
	}
	reason, err := s.game.Explain(args[0], args[1])
	if err != nil {
		return err
	}
	s.printf("%s%s: %s\n", args[0], args[1], reason)
	return nil
}

func (s *Shell) handleHistory() {
	var sb strings.Builder
	for i, r := range s.game.History() {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		fmt.Fprintf(&sb, " %s", r)
		if !r.Captured.IsEmpty() {
			fmt.Fprintf(&sb, "(x%s)", r.Captured)
		}
	}
	if sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	s.printf("%s", sb.String())
}

func (s *Shell) handleStatus() {
	g := s.game
	pos := g.Position()
	s.printf("session: %s\n", g.ID())
	s.printf("state: %s\n", g.State())
	switch g.State() {
	case game.StateCheckmate:
		s.printf("winner: %s\n", g.Winner())
	case game.StateDraw:
		s.printf("reason: %s\n", g.DrawReason())
	default:
		s.printf("to move: %s\n", g.SideToMove())
	}
	s.printf("ply: %d\n", pos.Plies())
	if last, ok := pos.LastMove(); ok {
		s.printf("last move: %s\n", last)
	}
	s.printf("material: %+d\n", pos.Material())
}

func (s *Shell) handleSave() error {
	if s.store == nil {
		return errStorageDisabled
	}
	if err := s.game.Save(s.store); err != nil {
		return err
	}
	s.printf("saved %s\n", s.game.ID())
	return nil
}

var errStorageDisabled = errors.New("storage is disabled")

func (s *Shell) handleResume(args []string) error {
	if s.store == nil {
		return errStorageDisabled
	}

	var id uuid.UUID
	var err error
	if len(args) > 0 {
		id, err = uuid.Parse(args[0])
	} else {
		id, err = s.store.LastSession()
	}
	if err != nil {
		return err
	}

	g, err := game.Resume(s.store, id, s.opts...)
	if err != nil {
		return err
	}
	s.game = g
	s.printf("resumed %s at ply %d (%s)\n", g.ID(), len(g.History()), g.State())
	return nil
}

func (s *Shell) handleStats() error {
	if s.store == nil {
		return errStorageDisabled
	}
	stats, err := s.store.LoadStats()
	if err != nil {
		return err
	}
	s.printf("games: %d  white: %d  black: %d  draws: %d\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws)
	s.printf("average length: %.1f plies, longest: %d\n", stats.AveragePlies(), stats.LongestGame)
	return nil
}

func (s *Shell) handlePerft(args []string) error {
	depth := 3
	if len(args) > 0 {
		var err error
		if depth, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid depth %q", args[0])
		}
	}
	if depth < 1 || depth > maxPerftDepth {
		return fmt.Errorf("depth must be between 1 and %d", maxPerftDepth)
	}

	start := time.Now()
	nodes := board.Perft(s.game.Position(), depth)
	elapsed := time.Since(start)

	s.printf("Nodes: %d\n", nodes)
	s.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		s.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
	return nil
}
