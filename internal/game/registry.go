package game

import (
	"time"

	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// Registry is the concurrency-safe map from room id to room. The map has its
// own lock, separate from the per-room locks, so listing or creating rooms
// never blocks an in-progress game.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*room
	grace time.Duration

	// onEvicted runs after an expired empty room was removed from the map.
	// Set by the engine before any room exists.
	onEvicted func(domain.Room)
}

func NewRegistry(grace time.Duration) *Registry {
	return &Registry{
		rooms: make(map[domain.RoomID]*room),
		grace: grace,
	}
}

func (reg *Registry) add(r *room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.rooms[r.meta.ID] = r
}

func (reg *Registry) get(id domain.RoomID) (*room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[id]
	return r, ok
}

// delete removes the room from the map. Idempotent: a second delete for the
// same id reports false and changes nothing.
func (reg *Registry) delete(id domain.RoomID) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.rooms[id]; !ok {
		return false
	}
	delete(reg.rooms, id)
	return true
}

// publicWaiting snapshots the public rooms still accepting players. Each room
// is locked only long enough to copy its summary.
func (reg *Registry) publicWaiting() []RoomSummary {
	reg.mu.RLock()
	rooms := make([]*room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.RUnlock()

	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		if !r.meta.Private && r.phase == domain.PhaseWaiting && !r.gone {
			out = append(out, r.summary())
		}
		r.mu.Unlock()
	}
	return out
}

// scheduleEviction arms the empty-room grace timer. Caller holds r.mu.
func (reg *Registry) scheduleEviction(r *room) {
	if r.evict != nil {
		r.evict.Stop()
	}
	r.evict = time.AfterFunc(reg.grace, func() { reg.evictIfEmpty(r) })
	log.Info().Str("module", "game.registry").Str("room", string(r.meta.ID)).
		Dur("grace", reg.grace).Msg("room empty, eviction scheduled")
}

// cancelEviction disarms a pending grace timer, if any. Caller holds r.mu.
// A timer that already fired is handled by the emptiness re-check in
// evictIfEmpty, so a lost race here is harmless.
func (reg *Registry) cancelEviction(r *room) {
	if r.evict != nil {
		r.evict.Stop()
		r.evict = nil
	}
}

// evictIfEmpty is the deferred grace-period check. It re-verifies emptiness
// under both locks and is safe to run after the room was already deleted by
// another path.
func (reg *Registry) evictIfEmpty(r *room) {
	reg.mu.Lock()
	r.mu.Lock()
	r.evict = nil
	if len(r.players) > 0 || r.gone {
		r.mu.Unlock()
		reg.mu.Unlock()
		return
	}
	r.gone = true
	delete(reg.rooms, r.meta.ID)
	meta := r.meta
	r.mu.Unlock()
	reg.mu.Unlock()

	log.Info().Str("module", "game.registry").Str("room", string(meta.ID)).Msg("room evicted")
	if reg.onEvicted != nil {
		reg.onEvicted(meta)
	}
}
