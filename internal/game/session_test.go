package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSession returns a session over a hand-mined board, skipping the
// deferred generation so scenarios are fully deterministic.
func testSession(d Difficulty, mines ...Position) *Session {
	s := NewSession(d, nil)
	placeMines(s.Board, mines...)
	return s
}

func TestNewSessionFromName(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StateNew, s.State)
	assert.Equal(t, 9, s.Board.Width)
	assert.Equal(t, 9, s.Board.Height)
	assert.Equal(t, 10, s.Board.MineCount)
	assert.True(t, s.StartedAt.IsZero())

	_, err = NewSessionFromName("impossible", nil)
	assert.Error(t, err)
}

func TestSessionAutoStart(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)

	ok, err := s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatePlaying, s.State)
	assert.False(t, s.StartedAt.IsZero())
	assert.Equal(t, 1, s.Moves)
}

func TestSessionFlagMoves(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)

	ok, err := s.MakeMove(0, 0, MoveFlag)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.MakeMove(0, 0, MoveFlag)
	require.NoError(t, err)
	require.True(t, ok)

	// Two flag moves net out to an unflagged cell but both count.
	assert.Equal(t, 2, s.FlagsUsed)
	assert.Equal(t, 0, s.Board.FlaggedCount)
	cell, err := s.Board.CellAt(0, 0)
	require.NoError(t, err)
	assert.True(t, cell.IsHidden())
	assert.Equal(t, 0, s.Moves, "flag moves do not bump the reveal counter")
}

func TestSessionUnknownMove(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)

	ok, err := s.MakeMove(0, 0, MoveNone)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StateNew, s.State, "unknown action must not auto-start")
	assert.True(t, s.StartedAt.IsZero())
	assert.Equal(t, 0, s.Moves)
	assert.True(t, s.Board.FirstClickPending, "unknown action must not touch the board")
}

func TestSessionNilRand(t *testing.T) {
	// Sessions created without an rng (the HTTP host does this) seed the
	// board lazily on the first reveal.
	s, err := NewSessionFromName("beginner", nil)
	require.NoError(t, err)

	ok, err := s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, s.Board.MinePositions, s.Difficulty.Mines)

	cell, err := s.Board.CellAt(4, 4)
	require.NoError(t, err)
	assert.False(t, cell.Mine)
}

func TestSessionWin(t *testing.T) {
	s := testSession(Difficulty{Name: "Test", Width: 9, Height: 9, Mines: 1}, Position{0, 0})

	ok, err := s.MakeMove(8, 8, MoveReveal)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, StateWon, s.State)
	assert.True(t, s.IsGameOver())
	assert.False(t, s.EndedAt.IsZero())

	_, err = s.MakeMove(0, 0, MoveReveal)
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestSessionLose(t *testing.T) {
	s := testSession(Difficulty{Name: "Test", Width: 9, Height: 9, Mines: 1}, Position{4, 4})

	ok, err := s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, StateLost, s.State)
	assert.True(t, s.Board.CheckLose())
	assert.False(t, s.EndedAt.IsZero())

	_, err = s.MakeMove(0, 0, MoveReveal)
	assert.ErrorIs(t, err, ErrIllegalState)
	_, err = s.MakeMove(0, 0, MoveFlag)
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestSessionExpandAdjacent(t *testing.T) {
	s := testSession(Difficulty{Name: "Test", Width: 9, Height: 9, Mines: 1}, Position{0, 0})

	// Expanding requires playing; a fresh session does not auto-start.
	_, err := s.ExpandAdjacent(1, 1)
	assert.ErrorIs(t, err, ErrIllegalState)

	ok, err := s.MakeMove(1, 1, MoveReveal)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.MakeMove(0, 0, MoveFlag)
	require.NoError(t, err)
	require.True(t, ok)

	moves := s.Moves
	expanded, err := s.ExpandAdjacent(1, 1)
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Equal(t, moves+1, s.Moves)
	assert.Equal(t, StateWon, s.State, "correct chord opens every remaining safe cell")

	_, err = s.ExpandAdjacent(1, 1)
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestSessionExpandNoop(t *testing.T) {
	s := testSession(Difficulty{Name: "Test", Width: 9, Height: 9, Mines: 1}, Position{0, 0})

	ok, err := s.MakeMove(1, 1, MoveReveal)
	require.NoError(t, err)
	require.True(t, ok)

	moves := s.Moves
	expanded, err := s.ExpandAdjacent(1, 1)
	require.NoError(t, err)
	assert.False(t, expanded, "chord without matching flags is a no-op")
	assert.Equal(t, moves, s.Moves)
}

func TestSessionPauseResume(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)

	s.Pause()
	assert.Equal(t, StateNew, s.State, "pause is a no-op before playing")

	_, err = s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	s.Pause()
	assert.Equal(t, StatePaused, s.State)
	assert.True(t, s.IsGameActive())

	_, err = s.MakeMove(0, 0, MoveReveal)
	assert.ErrorIs(t, err, ErrIllegalState)
	_, err = s.ExpandAdjacent(4, 4)
	assert.ErrorIs(t, err, ErrIllegalState)

	s.Resume()
	assert.Equal(t, StatePlaying, s.State)
}

func TestSessionDuration(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)

	_, ok := s.Duration()
	assert.False(t, ok, "duration is unset before the first move")

	_, err = s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	d, ok := s.Duration()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, d, time.Duration(0))
}

func TestSessionStatistics(t *testing.T) {
	s, err := NewSessionFromName("intermediate", testRand())
	require.NoError(t, err)

	stats := s.Statistics()
	assert.Equal(t, s.ID, stats.SessionID)
	assert.Equal(t, "Intermediate", stats.Difficulty)
	assert.Equal(t, 16, stats.BoardWidth)
	assert.Equal(t, 16, stats.BoardHeight)
	assert.Equal(t, 40, stats.MineCount)
	assert.Equal(t, StateNew, stats.State)
	assert.Nil(t, stats.StartedAt)
	assert.Nil(t, stats.DurationMs)

	_, err = s.MakeMove(8, 8, MoveReveal)
	require.NoError(t, err)
	_, err = s.MakeMove(0, 0, MoveFlag)
	require.NoError(t, err)

	stats = s.Statistics()
	assert.Equal(t, 1, stats.Moves)
	assert.Equal(t, 1, stats.FlagsUsed)
	assert.Equal(t, s.Board.RevealedCount, stats.RevealedCount)
	assert.Equal(t, 1, stats.FlaggedCount)
	assert.NotNil(t, stats.StartedAt)
	assert.NotNil(t, stats.DurationMs)
	assert.Nil(t, stats.EndedAt)
}

func TestSessionReset(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)

	_, err = s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	_, err = s.MakeMove(0, 0, MoveFlag)
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, StateNew, s.State)
	assert.Equal(t, 0, s.Moves)
	assert.Equal(t, 0, s.FlagsUsed)
	assert.True(t, s.StartedAt.IsZero())
	assert.True(t, s.EndedAt.IsZero())
	assert.Equal(t, 0, s.Board.RevealedCount)
	assert.True(t, s.Board.FirstClickPending)
	assert.Equal(t, Beginner, s.Difficulty, "reset keeps the difficulty")
}

func TestSessionGobRoundTrip(t *testing.T) {
	s, err := NewSessionFromName("beginner", testRand())
	require.NoError(t, err)
	_, err = s.MakeMove(4, 4, MoveReveal)
	require.NoError(t, err)
	_, err = s.MakeMove(0, 0, MoveFlag)
	require.NoError(t, err)

	buf, err := s.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeSession(buf)
	require.NoError(t, err)

	assert.Equal(t, s.ID, decoded.ID)
	assert.Equal(t, s.State, decoded.State)
	assert.Equal(t, s.Moves, decoded.Moves)
	assert.Equal(t, s.FlagsUsed, decoded.FlagsUsed)
	assert.Equal(t, s.Board.RevealedCount, decoded.Board.RevealedCount)
	assert.Equal(t, s.Board.Cells, decoded.Board.Cells)
	assert.Equal(t, s.Board.MinePositions, decoded.Board.MinePositions)

	// The decoded board has no rng; further play must still work.
	var target Position
	for _, c := range decoded.Board.Cells {
		if c.IsHidden() && !c.Mine {
			target = Position{c.Row, c.Col}
			break
		}
	}
	ok, err := decoded.MakeMove(target.Row, target.Col, MoveReveal)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseMove(t *testing.T) {
	move, err := ParseMove("reveal")
	require.NoError(t, err)
	assert.Equal(t, MoveReveal, move)

	move, err = ParseMove("FLAG")
	require.NoError(t, err)
	assert.Equal(t, MoveFlag, move)

	_, err = ParseMove("detonate")
	assert.Error(t, err)
}
