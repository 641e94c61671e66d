package connection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string, buffer int) *Client {
	return &Client{ID: id, Send: make(chan []byte, buffer)}
}

func TestManager_RegisterAndCount(t *testing.T) {
	m := NewManager()
	go m.Start()

	m.Register <- newTestClient("a", 1)
	m.Register <- newTestClient("b", 1)

	assert.Eventually(t, func() bool { return m.Count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestManager_SendToClient(t *testing.T) {
	m := NewManager()
	go m.Start()

	a := newTestClient("a", 1)
	b := newTestClient("b", 1)
	m.Register <- a
	m.Register <- b
	require.Eventually(t, func() bool { return m.Count() == 2 }, time.Second, 10*time.Millisecond)

	require.True(t, m.SendToClient("a", []byte("hello")))
	assert.Equal(t, []byte("hello"), <-a.Send)
	assert.Empty(t, b.Send)

	assert.False(t, m.SendToClient("missing", []byte("hello")))
}

func TestManager_SendToClientSkipsFullBuffer(t *testing.T) {
	m := NewManager()
	go m.Start()

	a := newTestClient("a", 1)
	m.Register <- a
	require.Eventually(t, func() bool { return m.Count() == 1 }, time.Second, 10*time.Millisecond)

	require.True(t, m.SendToClient("a", []byte("first")))
	assert.False(t, m.SendToClient("a", []byte("second")), "a full buffer must not block")
}

func TestManager_Broadcast(t *testing.T) {
	m := NewManager()
	go m.Start()

	a := newTestClient("a", 1)
	full := newTestClient("full", 1)
	full.Send <- []byte("stuck")
	m.Register <- a
	m.Register <- full
	require.Eventually(t, func() bool { return m.Count() == 2 }, time.Second, 10*time.Millisecond)

	m.Broadcast([]byte("state"))

	assert.Equal(t, []byte("state"), <-a.Send)
	// The full client keeps its old message; the broadcast skipped it
	assert.Equal(t, []byte("stuck"), <-full.Send)
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	m := NewManager()
	go m.Start()

	a := newTestClient("a", 1)
	m.Register <- a
	require.Eventually(t, func() bool { return m.Count() == 1 }, time.Second, 10*time.Millisecond)

	m.Unregister <- a
	require.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, 10*time.Millisecond)

	_, ok := <-a.Send
	assert.False(t, ok, "send channel must be closed on unregister")
}
