package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

const turnPhaseWriting = "writing"

// turnHandle owns the two timers of one writing turn: the periodic countdown
// tick and the one-shot deadline. A handle belongs to exactly one value of
// room.turnSeq; callbacks that fire late compare sequences and become no-ops.
type turnHandle struct {
	seq       uint64
	acting    string // name of the player this turn belongs to
	remaining int
	ticker    *time.Ticker
	done      chan struct{}
	deadline  *time.Timer
}

// scheduler drives one room's writing-phase countdown and automatic
// advancement. All entry points require the caller to hold room.mu.
type scheduler struct {
	bc           Broadcaster
	turnDuration time.Duration
	tickEvery    time.Duration
}

func newScheduler(bc Broadcaster, turnDuration, tickEvery time.Duration) *scheduler {
	return &scheduler{bc: bc, turnDuration: turnDuration, tickEvery: tickEvery}
}

// startTurn begins a fresh turn for the player at room.currentTurn. The
// previous turn's timers must already be cancelled.
func (s *scheduler) startTurn(r *room) {
	acting := r.players[r.currentTurn]
	r.turnSeq++
	h := &turnHandle{
		seq:       r.turnSeq,
		acting:    acting.Name,
		remaining: int(s.turnDuration / s.tickEvery),
		done:      make(chan struct{}),
	}
	r.turn = h
	r.wordSubmitted = false

	log.Debug().Str("module", "game.scheduler").Str("room", string(r.meta.ID)).
		Str("player", acting.Name).Int("turn", r.currentTurn).Msg("turn started")

	s.bc.ToRoom(r.meta.ID, EventNextTurn, NextTurnPayload{
		CurrentTurn:   r.currentTurn,
		PlayerName:    acting.Name,
		Phase:         turnPhaseWriting,
		TimeRemaining: h.remaining,
	})

	h.ticker = time.NewTicker(s.tickEvery)
	go s.runTicker(r, h)
	h.deadline = time.AfterFunc(s.turnDuration, func() { s.onDeadline(r, h) })
}

// cancelTurn stops both timers of the current turn, if any. Idempotent.
func (s *scheduler) cancelTurn(r *room) {
	h := r.turn
	if h == nil {
		return
	}
	h.deadline.Stop()
	h.ticker.Stop()
	close(h.done)
	r.turn = nil
}

// advanceTurn cancels the running turn and moves to the next remaining
// player. With fewer than two players there is nothing meaningful to advance
// to, so the scheduler stops driving instead of spinning.
func (s *scheduler) advanceTurn(r *room) {
	s.cancelTurn(r)
	if len(r.players) < 2 {
		log.Debug().Str("module", "game.scheduler").Str("room", string(r.meta.ID)).
			Int("players", len(r.players)).Msg("too few players, turns stopped")
		return
	}
	r.clampTurn()
	r.currentTurn = (r.currentTurn + 1) % len(r.players)
	s.startTurn(r)
}

func (s *scheduler) runTicker(r *room, h *turnHandle) {
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			r.mu.Lock()
			if r.turn != h {
				// Turn advanced while this tick was in flight.
				r.mu.Unlock()
				return
			}
			h.remaining--
			s.bc.ToRoom(r.meta.ID, EventTimerUpdate, TimerUpdatePayload{TimeRemaining: h.remaining})
			if h.remaining <= 0 {
				h.ticker.Stop()
				r.mu.Unlock()
				return
			}
			r.mu.Unlock()
		}
	}
}

// onDeadline fires once at the full countdown duration. A cancelled deadline
// that still fires detects the replaced handle and does nothing. The alert
// uses the name captured at startTurn: the seat index may point at someone
// else by now if the acting player left mid-turn.
func (s *scheduler) onDeadline(r *room, h *turnHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.turn != h || r.phase != domain.PhaseInProgress {
		return
	}
	if !r.wordSubmitted {
		log.Info().Str("module", "game.scheduler").Str("room", string(r.meta.ID)).
			Str("player", h.acting).Msg("turn timed out")
		s.bc.ToRoom(r.meta.ID, EventTimeoutAlert, TimeoutAlertPayload{
			PlayerName: h.acting,
			Message:    h.acting + " ran out of time",
		})
	}
	s.advanceTurn(r)
}
