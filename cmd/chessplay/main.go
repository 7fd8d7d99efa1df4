// Command chessplay runs a two-player chess session in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/cli"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/logging"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	sessionID  = flag.String("session", "", "resume the session with this id")
	noStore    = flag.Bool("no-storage", false, "do not open the session database")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessplay:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	promo, _ := board.KindFromChar(cfg.Rules.DefaultPromotion[0])
	opts := []game.Option{
		game.WithLogger(logger),
		game.WithAutoDraw(cfg.Rules.AutoDraw),
		game.WithDefaultPromotion(promo),
	}

	var store *storage.Storage
	if cfg.Storage.Enabled && !*noStore {
		store, err = storage.Open(cfg.DataDir, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Debug("storage opened", zap.String("dir", cfg.DataDir))
	}

	shell := cli.New(os.Stdout, store, logger.Named("cli"), opts...)

	if *sessionID != "" {
		if _, err := uuid.Parse(*sessionID); err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}
		if err := shell.Exec("resume", []string{*sessionID}); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "chessplay session %s, type help for commands\n", shell.Game().ID())
	return shell.Run(os.Stdin)
}
