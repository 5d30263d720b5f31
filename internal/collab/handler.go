package collab

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const defaultDisplayName = "Viewer"

// TokenValidator resolves a session access token to its session ID.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// ServeWS upgrades requests on /ws/session/{sessionId}?token=... and joins
// the connection to the session's room. origins are the allowed browser
// origins, with or without scheme.
func (h *Hub) ServeWS(tokens TokenValidator, origins []string) http.HandlerFunc {
	patterns := originPatterns(origins)

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := mux.Vars(r)["sessionId"]

		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		subject, err := tokens.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if subject != sessionID {
			http.Error(w, "token does not grant this session", http.StatusForbidden)
			return
		}
		if _, err := h.sessions.Get(sessionID); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		displayName := r.URL.Query().Get("name")
		if displayName == "" {
			displayName = defaultDisplayName
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: patterns,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(h, conn, sessionID, uuid.New().String(), displayName)

		h.Register(client)

		ctx := r.Context()
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}

func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
