package game

import (
	"fmt"
	"strings"
)

// Difficulty is a named {width, height, mines} tuple, immutable for the
// lifetime of a session.
type Difficulty struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mines  int    `json:"mines"`
}

var (
	Beginner     = Difficulty{Name: "Beginner", Width: 9, Height: 9, Mines: 10}
	Intermediate = Difficulty{Name: "Intermediate", Width: 16, Height: 16, Mines: 40}
	Advanced     = Difficulty{Name: "Advanced", Width: 30, Height: 16, Mines: 99}
)

func Presets() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// PresetByName looks up a preset case-insensitively.
func PresetByName(name string) (Difficulty, bool) {
	for _, d := range Presets() {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Difficulty{}, false
}

// CustomDifficulty gates user-supplied dimensions through
// ValidateBoardSettings. No difficulty is produced from invalid settings.
func CustomDifficulty(width, height, mines int) (Difficulty, error) {
	if err := ValidateBoardSettings(width, height, mines); err != nil {
		return Difficulty{}, err
	}
	return Difficulty{Name: "Custom", Width: width, Height: height, Mines: mines}, nil
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s %dx%d(%d)", d.Name, d.Width, d.Height, d.Mines)
}
