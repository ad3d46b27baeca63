package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// ConnectWS upgrades to a websocket and plays the session over newline-
// separated text commands (see commandNargs). The session is stored back
// after every message and the full view echoed to the client. One
// connection mutates one session, which keeps moves serialized.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("unable to read message", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		for _, cmd := range iterBySep(text, "\n") {
			if err := executeCommand(session, cmd); err != nil {
				g.logger.Debug("rejected command", "command", cmd, "error", err)
				if err := c.WriteJSON(wrapError(err)); err != nil {
					return
				}
				break
			}
		}

		if _, err := g.repo.UpdateGameSession(r.Context(), session); err != nil {
			g.logger.Error("unable to update session in db", "error", err)
			return
		}
		if err := c.WriteJSON(NewSessionDTO(session)); err != nil {
			g.logger.Error("unable to write session", "error", err)
			return
		}
	}
}
