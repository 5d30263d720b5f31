package collab

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/session"
)

func newTestClient(h *Hub, sessionID, clientID string) *Client {
	return &Client{
		hub:         h,
		send:        make(chan []byte, 256),
		SessionID:   sessionID,
		ClientID:    clientID,
		DisplayName: clientID + "-name",
	}
}

// next pops the oldest queued message, failing if there is none.
func next(t *testing.T, c *Client) *Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send queue closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	default:
		require.FailNow(t, "no message queued for "+c.ClientID)
		return nil
	}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()
	assert.Len(t, c.send, 0, "unexpected messages for %s", c.ClientID)
}

func submit(t *testing.T, h *Hub, c *Client, clientSeq int64, cmd session.Command) {
	t.Helper()
	payload, err := json.Marshal(CommandSubmitPayload{ClientSeq: clientSeq, Command: cmd})
	require.NoError(t, err)
	h.handleMessage(c, &Message{Type: TypeCmdSubmit, Payload: payload})
}

func newTestHub(t *testing.T) (*Hub, *session.State) {
	t.Helper()
	registry := session.NewRegistry(engine.DefaultOptions())
	return NewHub(registry), registry.Create()
}

func TestHubJoin(t *testing.T) {
	h, st := newTestHub(t)
	a := newTestClient(h, st.ID(), "a")
	b := newTestClient(h, st.ID(), "b")

	h.addClient(a)
	welcome := next(t, a)
	assert.Equal(t, TypeWelcome, welcome.Type)
	var wp WelcomePayload
	require.NoError(t, json.Unmarshal(welcome.Payload, &wp))
	assert.Equal(t, "a", wp.ClientID)
	assert.Equal(t, st.ID(), wp.SessionID)
	assert.Equal(t, TypeSceneRender, next(t, a).Type)
	assert.Equal(t, TypePresenceState, next(t, a).Type)
	assertEmpty(t, a)

	h.addClient(b)
	for _, want := range []string{TypeWelcome, TypeSceneRender, TypePresenceState} {
		assert.Equal(t, want, next(t, b).Type)
	}
	join := next(t, a)
	assert.Equal(t, TypePresenceJoin, join.Type)
	var jp PresenceJoinPayload
	require.NoError(t, json.Unmarshal(join.Payload, &jp))
	assert.Equal(t, "b", jp.ClientID)
	assert.Equal(t, "b-name", jp.DisplayName)
	assert.Equal(t, 2, h.RoomSize(st.ID()))
}

func TestHubJoinUnknownSession(t *testing.T) {
	h, _ := newTestHub(t)
	c := newTestClient(h, "sess_missing", "c")

	h.addClient(c)

	msg := next(t, c)
	assert.Equal(t, TypeError, msg.Type)
	_, ok := <-c.send
	assert.False(t, ok)
	assert.Equal(t, 0, h.RoomSize("sess_missing"))
}

func TestHubSubmit(t *testing.T) {
	h, st := newTestHub(t)
	a := newTestClient(h, st.ID(), "a")
	b := newTestClient(h, st.ID(), "b")
	h.addClient(a)
	h.addClient(b)
	for len(a.send) > 0 {
		next(t, a)
	}
	for len(b.send) > 0 {
		next(t, b)
	}

	submit(t, h, a, 7, session.Command{Type: session.CmdSceneSample})

	ack := next(t, a)
	assert.Equal(t, TypeCmdAck, ack.Type)
	assert.Equal(t, int64(1), ack.Seq)
	var ap CommandAckPayload
	require.NoError(t, json.Unmarshal(ack.Payload, &ap))
	assert.Equal(t, CommandAckPayload{ClientSeq: 7, ServerSeq: 1}, ap)

	for _, c := range []*Client{a, b} {
		render := next(t, c)
		assert.Equal(t, TypeSceneRender, render.Type)
		var rp RenderPayload
		require.NoError(t, json.Unmarshal(render.Payload, &rp))
		assert.Equal(t, int64(1), rp.ServerSeq)
		assert.Len(t, rp.Commands, 5)
		assertEmpty(t, c)
	}

	t.Run("rejected command", func(t *testing.T) {
		submit(t, h, a, 8, session.Command{Type: "shape.explode"})

		nack := next(t, a)
		assert.Equal(t, TypeCmdNack, nack.Type)
		var np CommandNackPayload
		require.NoError(t, json.Unmarshal(nack.Payload, &np))
		assert.Equal(t, int64(8), np.ClientSeq)
		assert.Contains(t, np.Reason, "unknown command type")
		assertEmpty(t, a)
		assertEmpty(t, b)
		assert.Equal(t, int64(1), st.Seq())
	})

	t.Run("malformed payload", func(t *testing.T) {
		h.handleMessage(a, &Message{Type: TypeCmdSubmit, Payload: json.RawMessage(`"nope"`)})
		assert.Equal(t, TypeCmdNack, next(t, a).Type)
		assertEmpty(t, b)
	})

	t.Run("unknown message type", func(t *testing.T) {
		h.handleMessage(a, &Message{Type: "doc.sync"})
		assert.Equal(t, TypeError, next(t, a).Type)
		assertEmpty(t, b)
	})
}

func TestHubPresence(t *testing.T) {
	h, st := newTestHub(t)
	a := newTestClient(h, st.ID(), "a")
	b := newTestClient(h, st.ID(), "b")
	h.addClient(a)
	h.addClient(b)
	for len(a.send) > 0 {
		next(t, a)
	}
	for len(b.send) > 0 {
		next(t, b)
	}

	payload, err := json.Marshal(PresencePayload{Cursor: &geom.Point{X: 1.5, Y: -2}, DisplayName: "spoofed"})
	require.NoError(t, err)
	h.handleMessage(a, &Message{Type: TypePresenceUpdate, Payload: payload})

	update := next(t, b)
	assert.Equal(t, TypePresenceUpdate, update.Type)
	assert.Equal(t, "a", update.ClientID)
	var pp PresencePayload
	require.NoError(t, json.Unmarshal(update.Payload, &pp))
	require.NotNil(t, pp.Cursor)
	assert.Equal(t, geom.Point{X: 1.5, Y: -2}, *pp.Cursor)
	assert.Equal(t, "a-name", pp.DisplayName)
	assertEmpty(t, a)

	c := newTestClient(h, st.ID(), "c")
	h.addClient(c)
	next(t, c)
	next(t, c)
	state := next(t, c)
	require.Equal(t, TypePresenceState, state.Type)
	var sp PresenceStatePayload
	require.NoError(t, json.Unmarshal(state.Payload, &sp))
	require.Contains(t, sp.Presences, "a")
	assert.Equal(t, geom.Point{X: 1.5, Y: -2}, *sp.Presences["a"].Cursor)
}

func TestHubLeave(t *testing.T) {
	h, st := newTestHub(t)
	a := newTestClient(h, st.ID(), "a")
	b := newTestClient(h, st.ID(), "b")
	h.addClient(a)
	h.addClient(b)
	for len(b.send) > 0 {
		next(t, b)
	}

	h.removeClient(a)

	leave := next(t, b)
	assert.Equal(t, TypePresenceLeave, leave.Type)
	var lp PresenceLeavePayload
	require.NoError(t, json.Unmarshal(leave.Payload, &lp))
	assert.Equal(t, "a", lp.ClientID)
	assert.Equal(t, 1, h.RoomSize(st.ID()))

	assert.NotPanics(t, func() { a.Send(newMessage(TypeError, ErrorPayload{})) })
	assert.NotPanics(t, func() { h.removeClient(a) })

	h.removeClient(b)
	assert.Equal(t, 0, h.RoomSize(st.ID()))
}

func TestHubSessionChanged(t *testing.T) {
	h, st := newTestHub(t)

	// No room yet: nothing to push.
	h.SessionChanged(st.ID())

	a := newTestClient(h, st.ID(), "a")
	h.addClient(a)
	for len(a.send) > 0 {
		next(t, a)
	}

	_, err := st.Apply(session.Command{Type: session.CmdEntityCreate, Kind: "point", Points: []geom.Point{{X: 1, Y: 1}}})
	require.NoError(t, err)
	h.SessionChanged(st.ID())

	render := next(t, a)
	assert.Equal(t, TypeSceneRender, render.Type)
	assert.Equal(t, int64(1), render.Seq)
}

func TestHubRendersArriveInSeqOrder(t *testing.T) {
	h, st := newTestHub(t)
	a := newTestClient(h, st.ID(), "a")
	b := newTestClient(h, st.ID(), "b")
	h.addClient(a)
	h.addClient(b)
	for len(b.send) > 0 {
		next(t, b)
	}

	const submits = 50
	var wg sync.WaitGroup
	for i := range submits {
		wg.Add(1)
		payload, err := json.Marshal(CommandSubmitPayload{ClientSeq: int64(i), Command: session.Command{Type: session.CmdCancel}})
		require.NoError(t, err)
		go func() {
			defer wg.Done()
			h.handleMessage(a, &Message{Type: TypeCmdSubmit, Payload: payload})
		}()
	}
	wg.Wait()

	var last int64
	renders := 0
	for len(b.send) > 0 {
		msg := next(t, b)
		require.Equal(t, TypeSceneRender, msg.Type)
		assert.GreaterOrEqual(t, msg.Seq, last, "render for seq %d after seq %d", msg.Seq, last)
		last = msg.Seq
		renders++
	}
	assert.Equal(t, submits, renders)
	assert.Equal(t, int64(submits), last)
}

func TestOriginPatterns(t *testing.T) {
	got := originPatterns([]string{"http://localhost:5173", "https://editor.example.com", "", "localhost:3000"})
	assert.Equal(t, []string{"localhost:5173", "editor.example.com", "localhost:3000"}, got)
}
