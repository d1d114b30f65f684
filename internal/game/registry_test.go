package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

func newEngineWithGrace(t *testing.T, grace time.Duration) (*Engine, *fakeBroadcaster) {
	t.Helper()
	bc := newFakeBroadcaster()
	reg := NewRegistry(grace)
	return NewEngine(reg, bc, NopListing{}, Options{TurnDuration: time.Minute}), bc
}

func TestRegistryDeleteIdempotent(t *testing.T) {
	reg := NewRegistry(time.Hour)
	r := newRoom(domain.Room{ID: "r1", Name: "room"})
	reg.add(r)

	assert.True(t, reg.delete("r1"))
	assert.False(t, reg.delete("r1"))
	_, ok := reg.get("r1")
	assert.False(t, ok)
}

func TestEmptyRoomEvictedAfterGrace(t *testing.T) {
	eng, bc := newEngineWithGrace(t, 40*time.Millisecond)

	created, err := eng.CreateRoom("creator", "room", 4, 1, false)
	require.NoError(t, err)
	require.NoError(t, eng.JoinRoom(created.ID, "c1", "Ana", "", ""))
	eng.LeaveRoom(created.ID, "c1")

	ok := waitFor(t, time.Second, func() bool {
		_, present := eng.reg.get(created.ID)
		return !present
	})
	assert.True(t, ok, "empty room survived the grace period")

	// Public eviction ripples into the lobby listing.
	assert.Greater(t, bc.countNamed(EventGamesUpdated), 0)
	assert.ErrorIs(t, eng.JoinRoom(created.ID, "c2", "Bea", "", ""), ErrRoomNotFound)
}

func TestRejoinCancelsEviction(t *testing.T) {
	eng, _ := newEngineWithGrace(t, 60*time.Millisecond)

	created, err := eng.CreateRoom("creator", "room", 4, 1, false)
	require.NoError(t, err)
	require.NoError(t, eng.JoinRoom(created.ID, "c1", "Ana", "", ""))
	eng.LeaveRoom(created.ID, "c1")
	require.NoError(t, eng.JoinRoom(created.ID, "c1", "Ana", "", ""))

	time.Sleep(150 * time.Millisecond)
	_, present := eng.reg.get(created.ID)
	assert.True(t, present, "occupied room was evicted")
}

func TestExplicitDeleteBeatsEviction(t *testing.T) {
	eng, _ := newEngineWithGrace(t, 40*time.Millisecond)

	created, err := eng.CreateRoom("creator", "room", 4, 1, false)
	require.NoError(t, err)
	require.NoError(t, eng.JoinRoom(created.ID, "c1", "Ana", "", ""))
	eng.LeaveRoom(created.ID, "c1")
	require.NoError(t, eng.DeleteRoom(created.ID))

	// The armed grace timer may still fire; it must find nothing to do.
	time.Sleep(100 * time.Millisecond)
	_, present := eng.reg.get(created.ID)
	assert.False(t, present)
}

func TestPublicWaitingSkipsEvicted(t *testing.T) {
	eng, _ := newEngineWithGrace(t, time.Hour)

	created, err := eng.CreateRoom("creator", "room", 4, 1, false)
	require.NoError(t, err)
	require.Len(t, eng.PublicRooms(), 1)

	require.NoError(t, eng.DeleteRoom(created.ID))
	assert.Empty(t, eng.PublicRooms())
}
