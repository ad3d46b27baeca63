package handlers

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/minefield-dev/minefield-server/internal/game"
)

// Maps known commands to number of arguments:
//
//	g         refresh (no-op)
//	o ROW COL reveal
//	f ROW COL flag
//	c ROW COL chord
//	p         pause
//	u         resume
//	r         reset
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"p": 0,
	"u": 0,
	"r": 0,
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// executeCommand applies one text command to a session. Engine-level
// rejections (out of bounds, illegal state) surface as errors; expected
// no-ops do not.
func executeCommand(s *game.Session, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return nil
	case "o", "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		move := game.MoveReveal
		if parts[0] == "f" {
			move = game.MoveFlag
		}
		_, err = s.MakeMove(row, col, move)
		return err
	case "c":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		_, err = s.ExpandAdjacent(row, col)
		return err
	case "p":
		s.Pause()
		return nil
	case "u":
		s.Resume()
		return nil
	case "r":
		s.Reset()
		return nil
	}
	return fmt.Errorf("invalid command")
}
