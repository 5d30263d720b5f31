package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vectorlab/clipedit/internal/auth"
	"github.com/vectorlab/clipedit/internal/engine"
)

// TokenIssuer signs access tokens for new sessions.
type TokenIssuer interface {
	IssueToken(sessionID string) (string, error)
}

// Listener is told about state changes made outside the realtime channel so
// it can push them to connected viewers.
type Listener interface {
	SessionChanged(sessionID string)
}

type Handler struct {
	registry *Registry
	tokens   TokenIssuer
	listener Listener
}

func NewHandler(registry *Registry, tokens TokenIssuer, listener Listener) *Handler {
	return &Handler{registry: registry, tokens: tokens, listener: listener}
}

type createResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type commandResponse struct {
	Seq    int64                `json:"seq"`
	Render []engine.DrawCommand `json:"render"`
}

type renderResponse struct {
	Seq      int64                `json:"seq"`
	Commands []engine.DrawCommand `json:"commands"`
}

// Routes mounts the session API under api. Every route except create goes
// through requireToken.
func (h *Handler) Routes(api *mux.Router, requireToken mux.MiddlewareFunc) {
	api.HandleFunc("/sessions", h.Create).Methods("POST")

	protected := api.PathPrefix("/sessions/{sessionId}").Subrouter()
	protected.Use(requireToken)
	protected.HandleFunc("/render", h.Render).Methods("GET")
	protected.HandleFunc("/state", h.State).Methods("GET")
	protected.HandleFunc("/commands", h.Apply).Methods("POST")

	api.Handle("/sessions/{sessionId}", requireToken(http.HandlerFunc(h.Delete))).Methods("DELETE")
}

// Create starts a session and returns its ID with an access token.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.registry.Create()

	token, err := h.tokens.IssueToken(s.ID())
	if err != nil {
		slog.Error("issue session token failed", "error", err)
		_ = h.registry.Delete(s.ID())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: s.ID(), Token: token})
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cmds, seq := s.Render()
	writeJSON(w, http.StatusOK, renderResponse{Seq: seq, Commands: cmds})
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	seq, err := s.Apply(cmd)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if h.listener != nil {
		h.listener.SessionChanged(s.ID())
	}

	cmds, _ := s.Render()
	writeJSON(w, http.StatusOK, commandResponse{Seq: seq, Render: cmds})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session(w, r); !ok {
		return
	}
	if err := h.registry.Delete(mux.Vars(r)["sessionId"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the session named in the path and checks that the
// request's token grants access to it.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*State, bool) {
	sessionID := mux.Vars(r)["sessionId"]
	if auth.SessionIDFromContext(r.Context()) != sessionID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return nil, false
	}
	s, err := h.registry.Get(sessionID)
	if err != nil {
		handleServiceError(w, err)
		return nil, false
	}
	return s, true
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrInvalidCommand):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		slog.Error("session error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
