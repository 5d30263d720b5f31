package session

import (
	"sync"
	"time"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/geom"
)

// MaxLogEntries bounds the per-session command history.
const MaxLogEntries = 1000

// LogEntry is one applied command.
type LogEntry struct {
	Seq     int64     `json:"seq"`
	Command Command   `json:"command"`
	At      time.Time `json:"at"`
}

// State holds the authoritative editor state of one session. Commands from
// every connected client are applied one at a time, in arrival order.
type State struct {
	mu        sync.Mutex
	id        string
	engine    *engine.Engine
	serverSeq int64
	opLog     []LogEntry
	lastPos   *geom.Point
	createdAt time.Time
	updatedAt time.Time
}

// NewState creates the state of a fresh session.
func NewState(id string, opts engine.Options) *State {
	now := time.Now()
	return &State{
		id:        id,
		engine:    engine.NewEngine(opts),
		opLog:     make([]LogEntry, 0),
		createdAt: now,
		updatedAt: now,
	}
}

func (s *State) ID() string { return s.id }

// Apply applies a command and returns the server sequence it was assigned.
// A rejected command leaves the sequence unchanged.
func (s *State) Apply(cmd Command) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := Dispatch(s.engine, cmd, s.lastPos); err != nil {
		return 0, err
	}
	if cmd.Pos != nil && (cmd.Type == CmdPointerDown || cmd.Type == CmdPointerDrag) {
		p := *cmd.Pos
		s.lastPos = &p
	}

	s.serverSeq++
	s.updatedAt = time.Now()
	s.opLog = append(s.opLog, LogEntry{Seq: s.serverSeq, Command: cmd, At: s.updatedAt})
	if len(s.opLog) > MaxLogEntries {
		s.opLog = append(s.opLog[:0], s.opLog[len(s.opLog)-MaxLogEntries:]...)
	}

	return s.serverSeq, nil
}

// Render returns the current draw commands together with the sequence they
// reflect.
func (s *State) Render() ([]engine.DrawCommand, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmds := s.engine.Render()
	out := make([]engine.DrawCommand, len(cmds))
	copy(out, cmds)
	return out, s.serverSeq
}

// Snapshot returns the full engine state.
func (s *State) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// HitTest returns the ID of the topmost entity at p.
func (s *State) HitTest(p geom.Point) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.HitTest(p)
}

// SelectionBounds returns the drawn extent of the selected entity.
func (s *State) SelectionBounds() (geom.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SelectionBounds()
}

// Seq returns the sequence of the last applied command.
func (s *State) Seq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverSeq
}

// Log returns a copy of the retained command history, oldest first.
func (s *State) Log() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.opLog))
	copy(out, s.opLog)
	return out
}

// UpdatedAt returns when the last command was applied.
func (s *State) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
