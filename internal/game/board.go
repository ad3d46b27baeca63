package game

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"
)

// Board owns a width*height grid of cells in row-major order. Mine placement
// is deferred until the first reveal so the first-clicked cell is always
// safe. Fields are exported for the gob round-trip; rnd is deliberately
// unexported and reseeded lazily after decoding.
type Board struct {
	Width             int
	Height            int
	MineCount         int
	Cells             []Cell
	MinePositions     map[Position]bool
	RevealedCount     int
	FlaggedCount      int
	FirstClickPending bool

	rnd *rand.Rand
}

// NewBoard builds an empty board. Parameter validation is the difficulty
// gate's job, not NewBoard's; passing unvetted values is on the caller.
func NewBoard(width, height, mineCount int, rnd *rand.Rand) *Board {
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Row = i / width
		cells[i].Col = i % width
	}
	return &Board{
		Width:             width,
		Height:            height,
		MineCount:         mineCount,
		Cells:             cells,
		MinePositions:     make(map[Position]bool),
		FirstClickPending: true,
		rnd:               rnd,
	}
}

func (b *Board) index(row, col int) int { return row*b.Width + col }

// CellAt returns the cell at a position for read access.
func (b *Board) CellAt(row, col int) (Cell, error) {
	if err := ValidatePosition(row, col, b.Width, b.Height); err != nil {
		return Cell{}, err
	}
	return b.Cells[b.index(row, col)], nil
}

func (b *Board) rand() *rand.Rand {
	if b.rnd == nil {
		b.rnd = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return b.rnd
}

// generateMines samples MineCount mines uniformly without replacement from
// every position except the safe one, then fills in adjacency counts for
// non-mine cells. At most one generation per board; repeat calls are no-ops.
func (b *Board) generateMines(safeRow, safeCol int) {
	if len(b.MinePositions) > 0 {
		return
	}

	candidates := make([]Position, 0, len(b.Cells)-1)
	for i := range b.Cells {
		p := Position{b.Cells[i].Row, b.Cells[i].Col}
		if p.Row == safeRow && p.Col == safeCol {
			continue
		}
		candidates = append(candidates, p)
	}
	r := b.rand()
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:b.MineCount] {
		b.MinePositions[p] = true
		b.Cells[b.index(p.Row, p.Col)].Mine = true
	}

	for i := range b.Cells {
		c := &b.Cells[i]
		if c.Mine {
			continue
		}
		n := 0
		for _, p := range AdjacentPositions(c.Row, c.Col, b.Width, b.Height) {
			if b.Cells[b.index(p.Row, p.Col)].Mine {
				n++
			}
		}
		c.AdjacentMines = n
	}
}

// Reveal opens a cell. The first reveal on a board triggers mine generation
// with this position as the guaranteed-safe cell. Opening an empty cell
// cascades through its zero-adjacency region. Reports false without
// mutation when the cell is already revealed or flagged.
func (b *Board) Reveal(row, col int) (bool, error) {
	revealed, err := b.revealFrom(row, col)
	if err != nil {
		return false, err
	}
	return len(revealed) > 0, nil
}

func (b *Board) revealFrom(row, col int) ([]Position, error) {
	if err := ValidatePosition(row, col, b.Width, b.Height); err != nil {
		return nil, err
	}
	cell := &b.Cells[b.index(row, col)]
	if !cell.CanReveal() {
		return nil, nil
	}

	if b.FirstClickPending {
		b.generateMines(row, col)
		b.FirstClickPending = false
	}

	cell.Reveal()
	b.RevealedCount++
	revealed := []Position{{row, col}}
	if !cell.Mine && cell.AdjacentMines == 0 {
		revealed = append(revealed, b.floodReveal(row, col)...)
	}
	return revealed, nil
}

// floodReveal walks the zero-adjacency region around a just-revealed empty
// cell with an explicit frontier, opening every hidden non-flagged neighbor
// exactly once. The seen set guards against re-enqueueing positions
// reachable over multiple paths.
func (b *Board) floodReveal(row, col int) []Position {
	var (
		revealed []Position
		start    = Position{row, col}
		frontier = []Position{start}
		seen     = map[Position]bool{start: true}
	)
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, p := range AdjacentPositions(cur.Row, cur.Col, b.Width, b.Height) {
			adj := &b.Cells[b.index(p.Row, p.Col)]
			if !adj.IsHidden() {
				continue
			}
			adj.Reveal()
			b.RevealedCount++
			revealed = append(revealed, p)
			if !adj.Mine && adj.AdjacentMines == 0 && !seen[p] {
				seen[p] = true
				frontier = append(frontier, p)
			}
		}
	}
	return revealed
}

// Flag toggles the flag on a cell, keeping FlaggedCount in step. Reports
// false without mutation when the cell is revealed.
func (b *Board) Flag(row, col int) (bool, error) {
	if err := ValidatePosition(row, col, b.Width, b.Height); err != nil {
		return false, err
	}
	cell := &b.Cells[b.index(row, col)]
	wasFlagged := cell.IsFlagged()
	if !cell.ToggleFlag() {
		return false, nil
	}
	if wasFlagged {
		b.FlaggedCount--
	} else {
		b.FlaggedCount++
	}
	return true, nil
}

// ExpandAdjacent chords a revealed numbered cell: when exactly
// AdjacentMines of its neighbors are flagged, every hidden non-flagged
// neighbor is revealed. The returned set includes reveals cascaded by flood
// fills. A wrong flag count returns an empty set with no mutation.
func (b *Board) ExpandAdjacent(row, col int) ([]Position, error) {
	if err := ValidatePosition(row, col, b.Width, b.Height); err != nil {
		return nil, err
	}
	cell := b.Cells[b.index(row, col)]
	if !cell.IsRevealed() || cell.AdjacentMines == 0 {
		return nil, nil
	}

	var (
		flags  int
		hidden []Position
	)
	for _, p := range AdjacentPositions(row, col, b.Width, b.Height) {
		switch adj := b.Cells[b.index(p.Row, p.Col)]; {
		case adj.IsFlagged():
			flags++
		case adj.IsHidden():
			hidden = append(hidden, p)
		}
	}
	if flags != cell.AdjacentMines {
		return nil, nil
	}

	var revealed []Position
	for _, p := range hidden {
		opened, err := b.revealFrom(p.Row, p.Col)
		if err != nil {
			return nil, err
		}
		revealed = append(revealed, opened...)
	}
	return revealed, nil
}

// CheckWin reports whether every non-mine cell is revealed. Flags are not
// required to win.
func (b *Board) CheckWin() bool {
	return b.RevealedCount == b.Width*b.Height-b.MineCount
}

// CheckLose reports whether any mine is revealed.
func (b *Board) CheckLose() bool {
	for p := range b.MinePositions {
		if b.Cells[b.index(p.Row, p.Col)].IsRevealed() {
			return true
		}
	}
	return false
}

// CellView is the per-cell record handed to presentation layers.
type CellView struct {
	Row           int  `json:"row"`
	Col           int  `json:"col"`
	Mine          bool `json:"is_mine"`
	Revealed      bool `json:"is_revealed"`
	Flagged       bool `json:"is_flagged"`
	AdjacentMines int  `json:"adjacent_mines"`
	CanReveal     bool `json:"can_reveal"`
	CanFlag       bool `json:"can_flag"`
}

// Snapshot copies the grid into view records, one slice per board row.
// Renderers never get a handle on the cells themselves.
func (b *Board) Snapshot() [][]CellView {
	grid := make([][]CellView, b.Height)
	for row := range grid {
		grid[row] = make([]CellView, b.Width)
		for col := range grid[row] {
			c := b.Cells[b.index(row, col)]
			grid[row][col] = CellView{
				Row:           row,
				Col:           col,
				Mine:          c.Mine,
				Revealed:      c.IsRevealed(),
				Flagged:       c.IsFlagged(),
				AdjacentMines: c.AdjacentMines,
				CanReveal:     c.CanReveal(),
				CanFlag:       c.CanFlag(),
			}
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Board(%dx%d, %d mines)\n", b.Width, b.Height, b.MineCount)
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			c := b.Cells[b.index(row, col)]
			switch {
			case c.IsFlagged():
				sb.WriteByte('F')
			case !c.IsRevealed():
				sb.WriteByte('?')
			case c.Mine:
				sb.WriteByte('*')
			default:
				sb.WriteByte(byte('0' + c.AdjacentMines))
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
