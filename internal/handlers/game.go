package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minefield-dev/minefield-server/internal/config"
	"github.com/minefield-dev/minefield-server/internal/game"
	"github.com/minefield-dev/minefield-server/internal/middleware"
	"github.com/minefield-dev/minefield-server/internal/repository"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
	}
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		difficulty game.Difficulty
		err        error
	)
	name := query.Get("difficulty")
	if name == "custom" {
		dto, err := ParseCustomBoardDTO(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		difficulty, err = game.CustomDifficulty(dto.Width, dto.Height, dto.Mines)
		if err != nil {
			sendEngineError(w, g.logger, err)
			return
		}
	} else {
		var ok bool
		difficulty, ok = game.PresetByName(name)
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(
				errors.New("difficulty must be beginner, intermediate, advanced or custom"),
			))
			return
		}
	}

	// Boards seed their own rng lazily on first reveal, which always runs
	// on a freshly decoded session. Injecting one here would never be used.
	session := game.NewSession(difficulty, nil)

	var playerID *int64
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		playerID = &claims.PlayerID
	}

	if _, err = g.repo.CreateGameSession(r.Context(), session, playerID); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewSessionDTO(session))
}

// loadSession fetches and decodes the session addressed by the path id,
// writing the error response itself when it cannot.
func (g *GameHandler) loadSession(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	stored, err := g.repo.GetGameSession(r.Context(), r.PathValue("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, false
	}
	session, err := stored.Session()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid session snapshot", "error", err)
		return nil, false
	}
	return session, true
}

func (g *GameHandler) storeAndSend(w http.ResponseWriter, r *http.Request, session *game.Session) {
	if _, err := g.repo.UpdateGameSession(r.Context(), session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}
	sendJSONOrLog(w, g.logger, NewSessionDTO(session))
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewSessionDTO(session))
}

func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := game.ParseMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if _, err := session.MakeMove(pos.Row, pos.Col, move); err != nil {
		sendEngineError(w, g.logger, err)
		return
	}
	g.storeAndSend(w, r, session)
}

func (g *GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if _, err := session.ExpandAdjacent(pos.Row, pos.Col); err != nil {
		sendEngineError(w, g.logger, err)
		return
	}
	g.storeAndSend(w, r, session)
}

func (g *GameHandler) Pause(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	session.Pause()
	g.storeAndSend(w, r, session)
}

func (g *GameHandler) Resume(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	session.Resume()
	g.storeAndSend(w, r, session)
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	session.Reset()
	g.storeAndSend(w, r, session)
}

func (g *GameHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, session.Statistics())
}
