package storage

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	sess := &Session{ID: uuid.New(), Moves: []string{"e2e4", "e7e5"}}
	require.NoError(t, s.SaveSession(sess))
	assert.False(t, sess.CreatedAt.IsZero())

	loaded, err := s.LoadSession(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, sess.Moves, loaded.Moves)
	assert.False(t, loaded.Finished())

	last, err := s.LastSession()
	require.NoError(t, err)
	assert.Equal(t, sess.ID, last)
}

func TestLoadMissingSession(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.LoadSession(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.LastSession()
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListAndDeleteSessions(t *testing.T) {
	s := newTestStorage(t)

	a := &Session{ID: uuid.New(), Moves: []string{"d2d4"}}
	b := &Session{ID: uuid.New(), Moves: []string{"c2c4"}, Result: "1/2-1/2", Reason: "stalemate"}
	require.NoError(t, s.SaveSession(a))
	require.NoError(t, s.SaveSession(b))

	sessions, err := s.ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	require.NoError(t, s.DeleteSession(a.ID))
	sessions, err = s.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, b.ID, sessions[0].ID)
	assert.True(t, sessions[0].Finished())
}

func TestRecordResult(t *testing.T) {
	s := newTestStorage(t)

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Zero(t, stats.GamesPlayed)
	assert.Zero(t, stats.AveragePlies())

	require.NoError(t, s.RecordResult(GameResult{Outcome: OutcomeBlackWins, Reason: "checkmate", Plies: 4}))
	require.NoError(t, s.RecordResult(GameResult{Outcome: OutcomeDraw, Reason: "stalemate", Plies: 20}))
	require.NoError(t, s.RecordResult(GameResult{Outcome: OutcomeWhiteWins, Reason: "checkmate", Plies: 6}))

	stats, err = s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.GamesPlayed)
	assert.Equal(t, 1, stats.WhiteWins)
	assert.Equal(t, 1, stats.BlackWins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 1, stats.DrawsByRule["stalemate"])
	assert.Equal(t, 20, stats.LongestGame)
	assert.InDelta(t, 10.0, stats.AveragePlies(), 0.001)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "1-0", OutcomeWhiteWins.String())
	assert.Equal(t, "0-1", OutcomeBlackWins.String())
	assert.Equal(t, "1/2-1/2", OutcomeDraw.String())
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, nil)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, s.SaveSession(&Session{ID: id, Moves: []string{"g1f3"}}))
	require.NoError(t, s.Close())

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	sess, err := s.LoadSession(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1f3"}, sess.Moves)
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestDataPaths(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.NotEmpty(t, dataDir)
	assert.Equal(t, appName, filepath.Base(dataDir))
	if runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		assert.Equal(t, filepath.Join(xdg, appName), dataDir)
	}
	assert.NoDirExists(t, dataDir)
}
