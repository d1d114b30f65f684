package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func startedRoom(t *testing.T, eng *Engine) (*room, string) {
	t.Helper()
	created, err := eng.CreateRoom("creator", "room", 4, 1, true)
	require.NoError(t, err)
	require.NoError(t, eng.JoinRoom(created.ID, "c1", "Ana", created.JoinCode, ""))
	require.NoError(t, eng.JoinRoom(created.ID, "c2", "Bea", created.JoinCode, ""))
	require.NoError(t, eng.JoinRoom(created.ID, "c3", "Cal", created.JoinCode, ""))
	require.NoError(t, eng.StartGame(created.ID, "creator"))
	r, ok := eng.reg.get(created.ID)
	require.True(t, ok)
	r.mu.Lock()
	acting := r.players[r.currentTurn].Name
	r.mu.Unlock()
	return r, acting
}

func TestTurnTimeoutAdvances(t *testing.T) {
	eng, bc := newTestEngine(t, Options{
		TurnDuration: 120 * time.Millisecond,
		TickInterval: 30 * time.Millisecond,
	})
	r, firstActing := startedRoom(t, eng)

	ok := waitFor(t, time.Second, func() bool {
		return bc.countNamed(EventTimeoutAlert) >= 1
	})
	require.True(t, ok, "deadline never fired")

	alerts := bc.named(EventTimeoutAlert)
	payload := alerts[0].Payload.(TimeoutAlertPayload)
	assert.Equal(t, firstActing, payload.PlayerName)
	assert.Contains(t, payload.Message, "ran out of time")

	// The expired turn was replaced by a new one for the next player.
	waitFor(t, time.Second, func() bool {
		return bc.countNamed(EventNextTurn) >= 2
	})
	turns := bc.named(EventNextTurn)
	require.GreaterOrEqual(t, len(turns), 2)
	first := turns[0].Payload.(NextTurnPayload)
	second := turns[1].Payload.(NextTurnPayload)
	assert.Equal(t, (first.CurrentTurn+1)%3, second.CurrentTurn)
	assert.Equal(t, turnPhaseWriting, second.Phase)

	r.mu.Lock()
	assert.NotNil(t, r.turn)
	r.mu.Unlock()
}

func TestTickerCountsDown(t *testing.T) {
	eng, bc := newTestEngine(t, Options{
		TurnDuration: 150 * time.Millisecond,
		TickInterval: 30 * time.Millisecond,
	})
	startedRoom(t, eng)

	ok := waitFor(t, time.Second, func() bool {
		return bc.countNamed(EventTimerUpdate) >= 2
	})
	require.True(t, ok)

	updates := bc.named(EventTimerUpdate)
	a := updates[0].Payload.(TimerUpdatePayload)
	b := updates[1].Payload.(TimerUpdatePayload)
	assert.Greater(t, a.TimeRemaining, b.TimeRemaining)
	assert.LessOrEqual(t, a.TimeRemaining, 5, "countdown starts at duration divided by tick")
}

func TestSubmitCancelsTimeout(t *testing.T) {
	eng, bc := newTestEngine(t, Options{
		TurnDuration: 200 * time.Millisecond,
		TickInterval: 50 * time.Millisecond,
	})
	r, firstActing := startedRoom(t, eng)

	r.mu.Lock()
	actingID := r.players[r.currentTurn].ID
	r.mu.Unlock()
	eng.SubmitWord(r.meta.ID, actingID, "clue")

	// Well past the original deadline: the cancelled timer must not alert
	// for the player who already submitted.
	time.Sleep(350 * time.Millisecond)
	for _, ev := range bc.named(EventTimeoutAlert) {
		assert.NotEqual(t, firstActing, ev.Payload.(TimeoutAlertPayload).PlayerName)
	}
}

// A timeout after the acting player left must still name that player, not
// whoever inherited the seat index.
func TestTimeoutAlertNamesDepartedPlayer(t *testing.T) {
	eng, bc := newTestEngine(t, Options{
		TurnDuration: 120 * time.Millisecond,
		TickInterval: 40 * time.Millisecond,
	})
	r, acting := startedRoom(t, eng)

	r.mu.Lock()
	actingID := r.players[r.currentTurn].ID
	r.mu.Unlock()
	eng.LeaveRoom(r.meta.ID, actingID)

	ok := waitFor(t, time.Second, func() bool {
		return bc.countNamed(EventTimeoutAlert) >= 1
	})
	require.True(t, ok, "deadline never fired")
	payload := bc.named(EventTimeoutAlert)[0].Payload.(TimeoutAlertPayload)
	assert.Equal(t, acting, payload.PlayerName)
}

func TestResetStopsTimers(t *testing.T) {
	eng, bc := newTestEngine(t, Options{
		TurnDuration: 150 * time.Millisecond,
		TickInterval: 50 * time.Millisecond,
	})
	r, _ := startedRoom(t, eng)

	require.NoError(t, eng.ResetGame(r.meta.ID, "creator"))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, bc.countNamed(EventTimeoutAlert))

	r.mu.Lock()
	assert.Nil(t, r.turn)
	assert.Equal(t, domain.PhaseWaiting, r.phase)
	r.mu.Unlock()
}
