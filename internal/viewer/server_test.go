package viewer

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orbitflight/orbitflight/internal/config"
	"github.com/orbitflight/orbitflight/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const waitFor = 2 * time.Second

func newTestServer(t *testing.T) (*Server, *input.Snapshot, *websocket.Conn) {
	t.Helper()
	snap := input.NewSnapshot(input.DefaultKeyTable())
	s := NewServer(config.ViewerConfig{
		OutQueueSize: 4,
		WriteTimeout: time.Second,
	}, snap, zap.NewNop())

	hs := httptest.NewServer(s.Handler())
	t.Cleanup(hs.Close)

	wsURL := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return s.Clients() == 1 }, waitFor, 5*time.Millisecond)
	return s, snap, conn
}

func TestServer_KeyMessagesReachSnapshot(t *testing.T) {
	_, snap, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(InboundMessage{Type: MsgKey, Code: 37, Pressed: true}))
	require.Eventually(t, func() bool { return snap.Held(input.KeyLeft) }, waitFor, 5*time.Millisecond)
	assert.True(t, snap.Key(input.KeyLeft).JustPressed)

	require.NoError(t, conn.WriteJSON(InboundMessage{Type: MsgKey, Code: 37, Pressed: false}))
	require.Eventually(t, func() bool { return !snap.Held(input.KeyLeft) }, waitFor, 5*time.Millisecond)
}

func TestServer_PointerMessagesReachSnapshot(t *testing.T) {
	_, snap, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(InboundMessage{Type: MsgPointer, X: 400, Y: 0, Width: 400, Height: 300}))
	require.Eventually(t, func() bool {
		x, y := snap.Pointer()
		return x == 1 && y == 1
	}, waitFor, 5*time.Millisecond)
}

func TestServer_IgnoresGarbage(t *testing.T) {
	s, snap, conn := newTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(InboundMessage{Type: "resize"}))
	require.NoError(t, conn.WriteJSON(InboundMessage{Type: MsgKey, Code: 32, Pressed: true}))

	require.Eventually(t, func() bool { return snap.Held(input.KeySpacebar) }, waitFor, 5*time.Millisecond)
	assert.Equal(t, 1, s.Clients())
}

func TestServer_BroadcastFrameState(t *testing.T) {
	s, _, conn := newTestServer(t)

	s.Broadcast(&FrameState{
		Frame: 42,
		Time:  1.5,
		Entities: []EntityState{
			{ID: 1, Name: "player", Model: "box", Position: [3]float64{0, 100, -50}, Rotation: [4]float64{1, 0, 0, 0}, Up: [3]float64{0, 1, 0}},
		},
		Camera: &CameraState{Up: [3]float64{0, 1, 0}},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got FrameState
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, uint64(42), got.Frame)
	assert.Equal(t, 1.5, got.Time)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "box", got.Entities[0].Model)
	assert.Equal(t, [3]float64{0, 100, -50}, got.Entities[0].Position)
	require.NotNil(t, got.Camera)
	assert.Empty(t, got.Arrows)
}

func TestServer_ClientDisconnect(t *testing.T) {
	s, _, conn := newTestServer(t)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return s.Clients() == 0 }, waitFor, 5*time.Millisecond)

	// no clients left: broadcast is a no-op
	s.Broadcast(&FrameState{Frame: 1})
}

func TestServer_Shutdown(t *testing.T) {
	s, _, conn := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.Equal(t, 0, s.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestClient_FullQueueReportsBackpressure(t *testing.T) {
	s := NewServer(config.ViewerConfig{OutQueueSize: 1}, input.NewSnapshot(nil), zap.NewNop())
	c := &Client{ID: "c", server: s, out: make(chan []byte, s.outSize), closeCh: make(chan struct{})}

	assert.True(t, c.enqueue([]byte("a")))
	assert.False(t, c.enqueue([]byte("b")))
}
