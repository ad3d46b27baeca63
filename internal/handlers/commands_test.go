package handlers

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minefield-dev/minefield-server/internal/game"
)

func testSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.NewSessionFromName("beginner", rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return s
}

func TestIterBySep(t *testing.T) {
	tests := []struct {
		input string
		sep   string
		array []string
	}{
		{"a b c", " ", []string{"a", "b", "c"}},
		{"foo\nbar\nbaz\n\nbazz", "\n", []string{"foo", "bar", "baz", "", "bazz"}},
		{"solo", "\n", []string{"solo"}},
	}
	for _, test := range tests {
		for i, p := range iterBySep(test.input, test.sep) {
			if i < 0 || i >= len(test.array) {
				t.Fatalf("iterBySep returned an invalid index: %d", i)
			}
			if p != test.array[i] {
				t.Errorf("iterBySep returned an incorrect piece: have %s, want %s",
					p, test.array[i])
			}
		}
	}
}

func TestExecuteCommandParsing(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantErr bool
	}{
		{"refresh", "g", false},
		{"reveal", "o 4 4", false},
		{"flag", "f 0 0", false},
		{"unknown command", "x", true},
		{"missing args", "o 4", true},
		{"extra args", "p 1", true},
		{"non-int row", "o four 4", true},
		{"non-int col", "o 4 four", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := executeCommand(testSession(t), test.command)
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecuteCommandLifecycle(t *testing.T) {
	s := testSession(t)

	require.NoError(t, executeCommand(s, "o 4 4"))
	assert.Equal(t, game.StatePlaying, s.State)
	assert.Equal(t, 1, s.Moves)

	hidden := game.Position{Row: -1}
	for _, c := range s.Board.Cells {
		if c.IsHidden() {
			hidden = game.Position{Row: c.Row, Col: c.Col}
			break
		}
	}
	require.NotEqual(t, -1, hidden.Row)
	require.NoError(t, executeCommand(s, fmt.Sprintf("f %d %d", hidden.Row, hidden.Col)))
	assert.Equal(t, 1, s.FlagsUsed)

	require.NoError(t, executeCommand(s, "p"))
	assert.Equal(t, game.StatePaused, s.State)

	// Moving while paused is an engine-level rejection.
	assert.ErrorIs(t, executeCommand(s, "o 0 0"), game.ErrIllegalState)

	require.NoError(t, executeCommand(s, "u"))
	assert.Equal(t, game.StatePlaying, s.State)

	require.NoError(t, executeCommand(s, "r"))
	assert.Equal(t, game.StateNew, s.State)
	assert.Equal(t, 0, s.Moves)
}

func TestExecuteCommandOutOfBounds(t *testing.T) {
	s := testSession(t)
	require.NoError(t, executeCommand(s, "o 4 4"))
	assert.ErrorIs(t, executeCommand(s, "o 9 9"), game.ErrOutOfBounds)
}
