package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore_AppendAndLoad(t *testing.T) {
	store := NewInMemoryEventStore()

	require.NoError(t, store.Append(HandStarted{HandID: "hand-1", Players: []string{"You", "Bot"}}))
	require.NoError(t, store.Append(BlindPosted{HandID: "hand-1", Player: "Bot", Kind: "small", Amount: 10}))
	require.NoError(t, store.Append(HandStarted{HandID: "hand-2"}))

	loaded, err := store.LoadEvents("hand-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "HAND_STARTED", loaded[0].EventName())
	assert.Equal(t, "BLIND_POSTED", loaded[1].EventName())

	other, err := store.LoadEvents("hand-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestInMemoryEventStore_UnknownHandIsEmpty(t *testing.T) {
	store := NewInMemoryEventStore()

	loaded, err := store.LoadEvents("nope")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestInMemoryEventStore_RejectsEventsWithoutHandID(t *testing.T) {
	store := NewInMemoryEventStore()

	err := store.Append(HandStarted{})
	require.Error(t, err)
	assert.Empty(t, store.GetEvents())
}

func TestInMemoryEventStore_LoadReturnsCopy(t *testing.T) {
	store := NewInMemoryEventStore()
	require.NoError(t, store.Append(HandStarted{HandID: "hand-1"}))

	first, err := store.LoadEvents("hand-1")
	require.NoError(t, err)
	first[0] = PotAwarded{HandID: "hand-1"}

	second, err := store.LoadEvents("hand-1")
	require.NoError(t, err)
	assert.Equal(t, "HAND_STARTED", second[0].EventName())
}

func TestGetHandID(t *testing.T) {
	assert.Equal(t, "hand-9", GetHandID(ActionApplied{HandID: "hand-9", Player: "You"}))
	assert.Equal(t, "hand-9", GetHandID(&ActionApplied{HandID: "hand-9"}))
}
