package collab

import (
	"encoding/json"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/session"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *geom.Point `json:"cursor,omitempty"`
	Selection   string      `json:"selection,omitempty"`
	DisplayName string      `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID    string `json:"clientId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Scene sync
	TypeSceneRender = "scene.render"

	// Command message types
	TypeCmdSubmit = "cmd.submit"
	TypeCmdAck    = "cmd.ack"
	TypeCmdNack   = "cmd.nack"
)

// WelcomePayload is the first message a client receives after joining.
type WelcomePayload struct {
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
	ServerSeq int64  `json:"serverSeq"`
}

// CommandSubmitPayload is the payload for cmd.submit messages
type CommandSubmitPayload struct {
	ClientSeq int64           `json:"clientSeq"`
	Command   session.Command `json:"command"`
}

// CommandAckPayload is the payload for cmd.ack messages
type CommandAckPayload struct {
	ClientSeq int64 `json:"clientSeq"`
	ServerSeq int64 `json:"serverSeq"`
}

// CommandNackPayload is the payload for cmd.nack messages
type CommandNackPayload struct {
	ClientSeq int64  `json:"clientSeq"`
	Reason    string `json:"reason"`
}

// RenderPayload is the payload for scene.render messages
type RenderPayload struct {
	ServerSeq int64                `json:"serverSeq"`
	Commands  []engine.DrawCommand `json:"commands"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(msgType string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("null")
	}
	return &Message{Type: msgType, Payload: data}
}
