package game

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionState is the session lifecycle tag:
//
//	new -> playing -> {paused <-> playing} -> {won | lost}
//
// Reset returns unconditionally to new with a fresh board.
type SessionState string

const (
	StateNew     SessionState = "new"
	StatePlaying SessionState = "playing"
	StatePaused  SessionState = "paused"
	StateWon     SessionState = "won"
	StateLost    SessionState = "lost"
)

// Move is a logical player action fed to MakeMove.
type Move int

const (
	MoveNone Move = iota
	MoveReveal
	MoveFlag
)

func ParseMove(s string) (Move, error) {
	switch strings.ToLower(s) {
	case "reveal":
		return MoveReveal, nil
	case "flag":
		return MoveFlag, nil
	}
	return MoveNone, fmt.Errorf("unknown move %q", s)
}

// Session wraps one board with lifecycle state, move counters and
// timestamps. A session must be mutated by at most one logical move at a
// time; callers embedding it in a concurrent host serialize moves per
// session. Zero timestamps mean "not set".
type Session struct {
	ID         string
	Difficulty Difficulty
	Board      *Board
	State      SessionState
	StartedAt  time.Time
	EndedAt    time.Time
	Moves      int
	FlagsUsed  int
}

// NewSession builds a session in the new state. The difficulty is expected
// to come from a preset or CustomDifficulty. rnd may be nil; the board then
// seeds itself on first use.
func NewSession(d Difficulty, rnd *rand.Rand) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Difficulty: d,
		Board:      NewBoard(d.Width, d.Height, d.Mines, rnd),
		State:      StateNew,
	}
}

// NewSessionFromName resolves a preset by name ("beginner", "intermediate",
// "advanced") and builds a session from it. Custom games go through
// CustomDifficulty + NewSession instead.
func NewSessionFromName(name string, rnd *rand.Rand) (*Session, error) {
	d, ok := PresetByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", name)
	}
	return NewSession(d, rnd), nil
}

func DecodeSession(buf []byte) (*Session, error) {
	var s Session
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Start transitions new -> playing and records the start time. Any other
// state is a no-op.
func (s *Session) Start() {
	if s.State != StateNew {
		return
	}
	s.State = StatePlaying
	s.StartedAt = time.Now()
}

// MakeMove applies one reveal or flag action. A new session auto-starts on
// its first reveal or flag; an unknown action reports false and leaves the
// session untouched. Lose is checked before win. Expected no-ops (revealing
// a flagged cell, flagging a revealed cell) report false without error;
// moving in a finished or paused session is ErrIllegalState.
func (s *Session) MakeMove(row, col int, move Move) (bool, error) {
	if s.State != StateNew && s.State != StatePlaying {
		return false, fmt.Errorf("%w: cannot move while %s", ErrIllegalState, s.State)
	}

	switch move {
	case MoveReveal:
		s.Start()
		ok, err := s.Board.Reveal(row, col)
		if err != nil || !ok {
			return ok, err
		}
		s.Moves++
		switch {
		case s.Board.CheckLose():
			s.State = StateLost
			s.EndedAt = time.Now()
		case s.Board.CheckWin():
			s.State = StateWon
			s.EndedAt = time.Now()
		}
		return true, nil

	case MoveFlag:
		s.Start()
		ok, err := s.Board.Flag(row, col)
		if err != nil || !ok {
			return ok, err
		}
		s.FlagsUsed++
		return true, nil
	}

	return false, nil
}

// ExpandAdjacent chords a revealed numbered cell. Unlike MakeMove it
// requires the session to already be playing; a new session does not
// auto-start. Reports whether any cell was revealed.
func (s *Session) ExpandAdjacent(row, col int) (bool, error) {
	if s.State != StatePlaying {
		return false, fmt.Errorf("%w: cannot expand while %s", ErrIllegalState, s.State)
	}
	revealed, err := s.Board.ExpandAdjacent(row, col)
	if err != nil {
		return false, err
	}
	if len(revealed) == 0 {
		return false, nil
	}
	s.Moves++
	if s.Board.CheckWin() {
		s.State = StateWon
		s.EndedAt = time.Now()
	}
	return true, nil
}

func (s *Session) Pause() {
	if s.State == StatePlaying {
		s.State = StatePaused
	}
}

func (s *Session) Resume() {
	if s.State == StatePaused {
		s.State = StatePlaying
	}
}

func (s *Session) IsGameOver() bool {
	return s.State == StateWon || s.State == StateLost
}

func (s *Session) IsGameActive() bool {
	return s.State == StatePlaying || s.State == StatePaused
}

// Duration reports elapsed play time. The second return is false when the
// session never started.
func (s *Session) Duration() (time.Duration, bool) {
	if s.StartedAt.IsZero() {
		return 0, false
	}
	end := s.EndedAt
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.StartedAt), true
}

// Reset rebuilds the board from the stored difficulty and returns the
// session to new with all counters and timestamps cleared.
func (s *Session) Reset() {
	s.Board = NewBoard(
		s.Difficulty.Width, s.Difficulty.Height, s.Difficulty.Mines, s.Board.rnd,
	)
	s.State = StateNew
	s.StartedAt = time.Time{}
	s.EndedAt = time.Time{}
	s.Moves = 0
	s.FlagsUsed = 0
}

// Statistics is a read-only snapshot of a session for presentation layers.
type Statistics struct {
	SessionID     string       `json:"session_id"`
	Difficulty    string       `json:"difficulty"`
	BoardWidth    int          `json:"board_width"`
	BoardHeight   int          `json:"board_height"`
	MineCount     int          `json:"mine_count"`
	State         SessionState `json:"state"`
	Moves         int          `json:"moves_count"`
	FlagsUsed     int          `json:"flags_used"`
	RevealedCount int          `json:"revealed_count"`
	FlaggedCount  int          `json:"flagged_count"`
	DurationMs    *int64       `json:"duration_ms,omitempty"`
	StartedAt     *int64       `json:"started_at,omitempty"`
	EndedAt       *int64       `json:"ended_at,omitempty"`
}

func (s *Session) Statistics() Statistics {
	stats := Statistics{
		SessionID:     s.ID,
		Difficulty:    s.Difficulty.Name,
		BoardWidth:    s.Board.Width,
		BoardHeight:   s.Board.Height,
		MineCount:     s.Board.MineCount,
		State:         s.State,
		Moves:         s.Moves,
		FlagsUsed:     s.FlagsUsed,
		RevealedCount: s.Board.RevealedCount,
		FlaggedCount:  s.Board.FlaggedCount,
	}
	if d, ok := s.Duration(); ok {
		ms := d.Milliseconds()
		stats.DurationMs = &ms
	}
	if !s.StartedAt.IsZero() {
		t := s.StartedAt.UnixMilli()
		stats.StartedAt = &t
	}
	if !s.EndedAt.IsZero() {
		t := s.EndedAt.UnixMilli()
		stats.EndedAt = &t
	}
	return stats
}

func (s *Session) String() string {
	return fmt.Sprintf("Session(%s, %s, %s, %d moves)",
		s.ID, s.Difficulty, s.State, s.Moves)
}
