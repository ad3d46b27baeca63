package game

import (
	"fmt"
	"math"
)

const (
	MinBoardWidth  = 9
	MaxBoardWidth  = 30
	MinBoardHeight = 9
	MaxBoardHeight = 30
	MaxMineDensity = 0.25
)

// Position is a (row, col) grid index, valid iff 0 <= row < height and
// 0 <= col < width. It doubles as a map key for mine and seen sets.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func ValidatePosition(row, col, width, height int) error {
	if row < 0 || row >= height {
		return fmt.Errorf("%w: row %d not in [0, %d)", ErrOutOfBounds, row, height)
	}
	if col < 0 || col >= width {
		return fmt.Errorf("%w: col %d not in [0, %d)", ErrOutOfBounds, col, width)
	}
	return nil
}

// AdjacentPositions returns the in-bounds compass neighbors of a cell, in
// row-major order.
func AdjacentPositions(row, col, width, height int) []Position {
	adjacent := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if 0 <= r && r < height && 0 <= c && c < width {
				adjacent = append(adjacent, Position{r, c})
			}
		}
	}
	return adjacent
}

// ValidateBoardSettings is the sole gate for preset and custom board
// parameters. The density cap keeps boards playable.
func ValidateBoardSettings(width, height, mineCount int) error {
	if width < MinBoardWidth || width > MaxBoardWidth {
		return fmt.Errorf("%w: width must be between %d and %d, got %d",
			ErrInvalidDimensions, MinBoardWidth, MaxBoardWidth, width)
	}
	if height < MinBoardHeight || height > MaxBoardHeight {
		return fmt.Errorf("%w: height must be between %d and %d, got %d",
			ErrInvalidDimensions, MinBoardHeight, MaxBoardHeight, height)
	}
	total := width * height
	if mineCount < 1 {
		return fmt.Errorf("%w: must be at least 1, got %d",
			ErrInvalidMineCount, mineCount)
	}
	if mineCount >= total {
		return fmt.Errorf("%w: must be less than total cells (%d), got %d",
			ErrInvalidMineCount, total, mineCount)
	}
	if density := MineDensity(width, height, mineCount); density > MaxMineDensity {
		return fmt.Errorf("%w: %.1f%% over the %.0f%% cap",
			ErrDensityExceeded, density*100, MaxMineDensity*100)
	}
	return nil
}

func MineDensity(width, height, mineCount int) float64 {
	return float64(mineCount) / float64(width*height)
}

// SuggestMineCount picks a mine count at roughly 15% density, clamped to at
// least one mine and at least one safe cell.
func SuggestMineCount(width, height int) int {
	total := width * height
	suggested := int(math.Round(float64(total) * 0.15))
	return min(max(suggested, 1), total-1)
}
