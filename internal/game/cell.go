package game

import "strconv"

// CellState is the per-cell state tag. Hidden cells may be revealed or
// flagged; flagging toggles; Revealed is terminal.
type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "cellstate(" + strconv.Itoa(int(s)) + ")"
	}
}

// Cell is one square of the board. Mine and AdjacentMines are set exactly
// once during mine generation and never touched by state transitions;
// AdjacentMines is left at zero for mine cells and not consulted for them.
// Fields are exported for the gob round-trip.
type Cell struct {
	Row           int
	Col           int
	Mine          bool
	AdjacentMines int
	State         CellState
}

// Reveal moves the cell to Revealed. Reports whether the transition
// happened; revealed and flagged cells stay put.
func (c *Cell) Reveal() bool {
	if c.State != Hidden {
		return false
	}
	c.State = Revealed
	return true
}

// ToggleFlag flips Hidden and Flagged. Revealed cells cannot be flagged.
func (c *Cell) ToggleFlag() bool {
	switch c.State {
	case Hidden:
		c.State = Flagged
	case Flagged:
		c.State = Hidden
	default:
		return false
	}
	return true
}

func (c Cell) CanReveal() bool { return c.State == Hidden }

func (c Cell) CanFlag() bool { return c.State == Hidden || c.State == Flagged }

func (c Cell) IsHidden() bool { return c.State == Hidden }

func (c Cell) IsRevealed() bool { return c.State == Revealed }

func (c Cell) IsFlagged() bool { return c.State == Flagged }
