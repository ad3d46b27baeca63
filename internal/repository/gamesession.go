package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/minefield-dev/minefield-server/internal/game"
)

// GameSession is the stored form of an engine session: a gob snapshot blob
// plus denormalized columns for querying.
type GameSession struct {
	SessionID  string
	PlayerID   *int64
	Difficulty string
	Width      int32
	Height     int32
	MineCount  int32
	State      string
	MovesCount int32
	FlagsUsed  int32
	StartedAt  pgtype.Timestamptz
	EndedAt    pgtype.Timestamptz
	Snapshot   []byte
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

func sessionArgs(s *game.Session) (pgx.NamedArgs, error) {
	snapshot, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	var startedAt, endedAt *time.Time
	if !s.StartedAt.IsZero() {
		startedAt = &s.StartedAt
	}
	if !s.EndedAt.IsZero() {
		endedAt = &s.EndedAt
	}
	return pgx.NamedArgs{
		"session_id":  s.ID,
		"difficulty":  s.Difficulty.Name,
		"width":       s.Difficulty.Width,
		"height":      s.Difficulty.Height,
		"mine_count":  s.Difficulty.Mines,
		"state":       string(s.State),
		"moves_count": s.Moves,
		"flags_used":  s.FlagsUsed,
		"started_at":  startedAt,
		"ended_at":    endedAt,
		"snapshot":    snapshot,
	}, nil
}

func (q *Queries) CreateGameSession(
	ctx context.Context, s *game.Session, playerID *int64,
) (*GameSession, error) {
	args, err := sessionArgs(s)
	if err != nil {
		return nil, err
	}
	args["player_id"] = playerID

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			session_id, player_id, difficulty, width, height, mine_count,
			state, moves_count, flags_used, started_at, ended_at, snapshot
		)
		VALUES (
			@session_id, @player_id, @difficulty, @width, @height, @mine_count,
			@state, @moves_count, @flags_used, @started_at, @ended_at, @snapshot
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) GetGameSession(ctx context.Context, sessionID string) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE session_id = $1",
		sessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, s *game.Session,
) (*GameSession, error) {
	args, err := sessionArgs(s)
	if err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session SET
			state       = @state,
			moves_count = @moves_count,
			flags_used  = @flags_used,
			started_at  = @started_at,
			ended_at    = @ended_at,
			snapshot    = @snapshot,
			updated_at  = now()
		WHERE session_id = @session_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// Session decodes the stored engine snapshot.
func (gs *GameSession) Session() (*game.Session, error) {
	return game.DecodeSession(gs.Snapshot)
}
