package api

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingConn implements relay.Conn and records written frames.
type recordingConn struct {
	mu     sync.Mutex
	frames [][]byte
}

func (c *recordingConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	c.frames = append(c.frames, buf)
	return nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) frameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *recordingConn) last(t *testing.T) []byte {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.frames)
	return c.frames[len(c.frames)-1]
}

func TestSendMessageRelaysClientFrame(t *testing.T) {
	hub := relay.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		hub.Wait()
	})

	aliceConn := &recordingConn{}
	bobConn := &recordingConn{}
	hub.Register(&relay.Client{ID: "c1", Username: "alice", Room: "book-1", Conn: aliceConn})
	hub.Register(&relay.Client{ID: "c2", Username: "bob", Room: "book-1", Conn: bobConn})
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	h := NewWSHandlers(hub)
	h.handleSendMessage(nil, &relay.Client{ID: "c1", Username: "alice"},
		json.RawMessage(`{"room":"book-1","author":"alice","message":"is this still available?","time":"10:30"}`))

	require.Eventually(t, func() bool {
		return bobConn.frameCount() == 1
	}, time.Second, 5*time.Millisecond)

	var f struct {
		Type    string                   `json:"type"`
		Payload relay.ChatMessagePayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(bobConn.last(t), &f))
	assert.Equal(t, "receive_message", f.Type)
	assert.Equal(t, "alice", f.Payload.Author)
	assert.Equal(t, "is this still available?", f.Payload.Message)
	assert.Equal(t, "10:30", f.Payload.Time)

	assert.Zero(t, aliceConn.frameCount(), "sender must not hear its own message")
}
