package collab

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/session"
)

// Sessions looks up the state a room applies commands to.
type Sessions interface {
	Get(id string) (*session.State, error)
}

type Room struct {
	sessionID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager

	// renderMu serializes reading a render and queueing it, so every client
	// receives scene.render messages in non-decreasing serverSeq order.
	renderMu sync.Mutex
}

func NewRoom(sessionID string) *Room {
	return &Room{
		sessionID: sessionID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // sessionID -> room
	sessions   Sessions
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub(sessions Sessions) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		sessions:   sessions,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and closes every client's send queue.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// SessionChanged pushes the current render of a session to its room. It is
// called for changes made through the REST API.
func (h *Hub) SessionChanged(sessionID string) {
	h.broadcastRender(sessionID)
}

// RoomSize returns the number of clients connected to a session.
func (h *Hub) RoomSize(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[sessionID]; ok {
		return len(room.clients)
	}
	return 0
}

func (h *Hub) addClient(client *Client) {
	state, err := h.sessions.Get(client.SessionID)
	if err != nil {
		slog.Warn("join unknown session", "session", client.SessionID, "client", client.ClientID)
		client.Send(newMessage(TypeError, ErrorPayload{Message: err.Error()}))
		client.close()
		return
	}

	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		room = NewRoom(client.SessionID)
		h.rooms[client.SessionID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	room.renderMu.Lock()
	commands, seq := state.Render()
	client.Send(newMessage(TypeWelcome, WelcomePayload{
		ClientID:  client.ClientID,
		SessionID: client.SessionID,
		ServerSeq: seq,
	}))
	client.Send(renderMessage(commands, seq))
	room.renderMu.Unlock()
	client.Send(room.presence.StateMessage())

	// Broadcast join to other clients
	joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{
		ClientID:    client.ClientID,
		DisplayName: client.DisplayName,
	})
	joinMsg.ClientID = client.ClientID
	h.broadcastToRoom(client.SessionID, joinMsg, client.ClientID)

	slog.Info("client joined", "client", client.ClientID, "session", client.SessionID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, member := room.clients[client.ClientID]; !member {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()
	room.presence.Remove(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.SessionID)
	}
	h.mu.Unlock()

	// Broadcast leave to remaining clients
	leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{ClientID: client.ClientID})
	leaveMsg.ClientID = client.ClientID
	h.broadcastToRoom(client.SessionID, leaveMsg, "")

	slog.Info("client left", "client", client.ClientID, "session", client.SessionID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.clients {
			c.close()
		}
		delete(h.rooms, id)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeCmdSubmit:
		h.handleSubmit(sender, msg)
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		sender.Send(newMessage(TypeError, ErrorPayload{Message: "unknown message type: " + msg.Type}))
	}
}

// handleSubmit applies a command to the session, answers the sender and
// pushes the new render to the whole room.
func (h *Hub) handleSubmit(sender *Client, msg *Message) {
	var submit CommandSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid command payload", "error", err, "client", sender.ClientID)
		sender.Send(newMessage(TypeCmdNack, CommandNackPayload{Reason: "invalid payload"}))
		return
	}

	state, err := h.sessions.Get(sender.SessionID)
	if err != nil {
		sender.Send(newMessage(TypeCmdNack, CommandNackPayload{ClientSeq: submit.ClientSeq, Reason: err.Error()}))
		return
	}

	seq, err := state.Apply(submit.Command)
	if err != nil {
		slog.Debug("command rejected", "error", err, "type", submit.Command.Type, "client", sender.ClientID)
		sender.Send(newMessage(TypeCmdNack, CommandNackPayload{ClientSeq: submit.ClientSeq, Reason: err.Error()}))
		return
	}

	ack := newMessage(TypeCmdAck, CommandAckPayload{ClientSeq: submit.ClientSeq, ServerSeq: seq})
	ack.Seq = seq
	sender.Send(ack)

	h.broadcastRender(sender.SessionID)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.SessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.ClientID, &presence)

	// Broadcast to other clients in room
	outMsg := newMessage(TypePresenceUpdate, presence)
	outMsg.ClientID = sender.ClientID
	h.broadcastToRoom(sender.SessionID, outMsg, sender.ClientID)
}

func (h *Hub) broadcastRender(sessionID string) {
	h.mu.RLock()
	room, ok := h.rooms[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	state, err := h.sessions.Get(sessionID)
	if err != nil {
		return
	}

	room.renderMu.Lock()
	defer room.renderMu.Unlock()
	commands, seq := state.Render()
	h.broadcastToRoom(sessionID, renderMessage(commands, seq), "")
}

func renderMessage(commands []engine.DrawCommand, seq int64) *Message {
	msg := newMessage(TypeSceneRender, RenderPayload{ServerSeq: seq, Commands: commands})
	msg.Seq = seq
	return msg
}

func (h *Hub) broadcastToRoom(sessionID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[sessionID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
