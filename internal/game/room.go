package game

import (
	"sync"
	"time"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// room is one game's full runtime state. Every mutation happens under mu:
// the per-room lock is the serialization point for operations, scheduler
// callbacks and the eviction check, so broadcast order always reflects the
// order state changes were applied.
type room struct {
	mu   sync.Mutex
	meta domain.Room

	phase   domain.Phase
	players []*domain.Player
	word    string
	chat    []domain.Message

	currentTurn   int
	wordSubmitted bool
	turnSeq       uint64
	turn          *turnHandle

	evict *time.Timer // pending empty-room grace timer, nil otherwise
	gone  bool        // set once the registry removed the room
}

func newRoom(meta domain.Room) *room {
	return &room{
		meta:    meta,
		phase:   domain.PhaseWaiting,
		players: make([]*domain.Player, 0, meta.TotalPlayers),
	}
}

// The helpers below assume r.mu is held.

func (r *room) playerByID(id string) (int, *domain.Player) {
	for i, p := range r.players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (r *room) hasName(name string) bool {
	for _, p := range r.players {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (r *room) roster() []PlayerSummary {
	out := make([]PlayerSummary, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, PlayerSummary{Name: p.Name, Avatar: p.Avatar})
	}
	return out
}

func (r *room) rosterPayload() RosterPayload {
	return RosterPayload{
		Players:      r.roster(),
		CurrentCount: len(r.players),
		TotalCount:   r.meta.TotalPlayers,
	}
}

// clampTurn keeps currentTurn a valid index after the player list shrank.
func (r *room) clampTurn() {
	if len(r.players) == 0 {
		r.currentTurn = 0
		return
	}
	if r.currentTurn >= len(r.players) {
		r.currentTurn = 0
	}
}

func (r *room) info() RoomInfo {
	return RoomInfo{
		ID:             r.meta.ID,
		Name:           r.meta.Name,
		TotalPlayers:   r.meta.TotalPlayers,
		CurrentPlayers: len(r.players),
		Started:        r.phase == domain.PhaseInProgress,
		Private:        r.meta.Private,
	}
}

func (r *room) summary() RoomSummary {
	return RoomSummary{
		ID:             r.meta.ID,
		Name:           r.meta.Name,
		CurrentPlayers: len(r.players),
		TotalPlayers:   r.meta.TotalPlayers,
		ImpostorCount:  r.meta.Impostors,
	}
}
