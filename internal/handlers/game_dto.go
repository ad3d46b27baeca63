package handlers

import (
	"github.com/gorilla/schema"

	"github.com/minefield-dev/minefield-server/internal/game"
)

type CustomBoardDTO struct {
	Width  int `schema:"width,required"`
	Height int `schema:"height,required"`
	Mines  int `schema:"mines,required"`
}

func ParseCustomBoardDTO(src map[string][]string) (CustomBoardDTO, error) {
	var dto CustomBoardDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// SessionDTO is the wire view of a session: grid snapshot plus statistics.
type SessionDTO struct {
	SessionID  string            `json:"session_id"`
	Difficulty game.Difficulty   `json:"difficulty"`
	State      game.SessionState `json:"state"`
	Grid       [][]game.CellView `json:"grid"`
	Statistics game.Statistics   `json:"statistics"`
}

func NewSessionDTO(s *game.Session) *SessionDTO {
	return &SessionDTO{
		SessionID:  s.ID,
		Difficulty: s.Difficulty,
		State:      s.State,
		Grid:       s.Board.Snapshot(),
		Statistics: s.Statistics(),
	}
}
