package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage keys
const (
	keyStats         = "stats"
	keyLastSession   = "last_session"
	keySessionPrefix = "session/"
)

// ErrSessionNotFound is returned when no session is stored under an id.
var ErrSessionNotFound = errors.New("session not found")

// Session is a saved game: the coordinate move log from the initial position
// plus the result once the game has ended.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Moves     []string  `json:"moves"`
	Result    string    `json:"result,omitempty"` // "1-0", "0-1", "1/2-1/2"
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Finished returns true if the session has a result.
func (s *Session) Finished() bool {
	return s.Result != ""
}

// Outcome is the result of a completed game.
type Outcome int

const (
	OutcomeWhiteWins Outcome = iota
	OutcomeBlackWins
	OutcomeDraw
)

// String returns the score notation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWhiteWins:
		return "1-0"
	case OutcomeBlackWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// GameResult describes a completed game for statistics.
type GameResult struct {
	Outcome Outcome
	Reason  string // "checkmate", "stalemate", "threefold repetition", ...
	Plies   int
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed  int            `json:"games_played"`
	WhiteWins    int            `json:"white_wins"`
	BlackWins    int            `json:"black_wins"`
	Draws        int            `json:"draws"`
	DrawsByRule  map[string]int `json:"draws_by_rule"`
	TotalPlies   int            `json:"total_plies"`
	LongestGame  int            `json:"longest_game"`
	LastFinished time.Time      `json:"last_finished"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		DrawsByRule: make(map[string]int),
	}
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log *zap.Logger
}

// Open opens (or creates) the database under dataDir.
func Open(dataDir string, logger *zap.Logger) (*Storage, error) {
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	return open(badger.DefaultOptions(dbDir), logger)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory(logger *zap.Logger) (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), logger)
}

func open(opts badger.Options, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Logger = badgerLogger{logger.Named("badger").Sugar()}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db, log: logger}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func sessionKey(id uuid.UUID) []byte {
	return []byte(keySessionPrefix + id.String())
}

// SaveSession stores the session and marks it as the most recent one.
func (s *Storage) SaveSession(sess *Session) error {
	now := time.Now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(sessionKey(sess.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyLastSession), []byte(sess.ID.String()))
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}

	s.log.Debug("session saved", zap.Stringer("id", sess.ID), zap.Int("moves", len(sess.Moves)))
	return nil
}

// LoadSession loads the session stored under id.
func (s *Storage) LoadSession(id uuid.UUID) (*Session, error) {
	sess := &Session{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, sess)
		})
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// LastSession returns the id of the most recently saved session.
func (s *Storage) LastSession() (uuid.UUID, error) {
	var id uuid.UUID

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLastSession))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id, err = uuid.ParseBytes(val)
			return err
		})
	})
	return id, err
}

// ListSessions returns every stored session, in key order.
func (s *Storage) ListSessions() ([]*Session, error) {
	var sessions []*Session
	prefix := []byte(keySessionPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			sess := &Session{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, sess)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			sessions = append(sessions, sess)
		}
		return nil
	})
	return sessions, err
}

// DeleteSession removes a stored session.
func (s *Storage) DeleteSession(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if stats.DrawsByRule == nil {
		stats.DrawsByRule = make(map[string]int)
	}

	return stats, err
}

// RecordResult records a completed game and updates statistics
func (s *Storage) RecordResult(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.LongestGame = max(stats.LongestGame, result.Plies)
	stats.LastFinished = time.Now()

	switch result.Outcome {
	case OutcomeWhiteWins:
		stats.WhiteWins++
	case OutcomeBlackWins:
		stats.BlackWins++
	default:
		stats.Draws++
		stats.DrawsByRule[result.Reason]++
	}

	s.log.Info("game recorded",
		zap.Stringer("outcome", result.Outcome),
		zap.String("reason", result.Reason),
		zap.Int("plies", result.Plies))

	return s.SaveStats(stats)
}

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
