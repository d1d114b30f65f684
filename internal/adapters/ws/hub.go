package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// Hub tracks every live connection and the room group each one is subscribed
// to. It implements game.Broadcaster: fan-out is fire-and-forget, a slow
// consumer loses the frame instead of stalling the room.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*Conn
	groups map[domain.RoomID]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[string]*Conn),
		groups: make(map[domain.RoomID]map[string]struct{}),
	}
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
}

// unregister drops the connection and its group memberships.
func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
	for roomID, members := range h.groups {
		delete(members, id)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}
}

func (h *Hub) Subscribe(roomID domain.RoomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[roomID]
	if !ok {
		members = make(map[string]struct{})
		h.groups[roomID] = members
	}
	members[playerID] = struct{}{}
}

func (h *Hub) Unsubscribe(roomID domain.RoomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.groups[roomID]; ok {
		delete(members, playerID)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}
}

func (h *Hub) ToRoom(roomID domain.RoomID, event string, payload any) {
	frame, ok := marshal(event, payload)
	if !ok {
		return
	}
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.groups[roomID]))
	for id := range h.groups[roomID] {
		if c, ok := h.conns[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	dropped := 0
	for _, c := range targets {
		if err := c.TrySend(frame); err != nil {
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug().Str("module", "ws.hub").Str("room", string(roomID)).
			Str("event", event).Int("dropped", dropped).Msg("fanout dropped frames")
	}
}

func (h *Hub) ToPlayer(playerID string, event string, payload any) {
	frame, ok := marshal(event, payload)
	if !ok {
		return
	}
	h.mu.RLock()
	c, exists := h.conns[playerID]
	h.mu.RUnlock()
	if exists {
		_ = c.TrySend(frame)
	}
}

func (h *Hub) ToAll(event string, payload any) {
	frame, ok := marshal(event, payload)
	if !ok {
		return
	}
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		_ = c.TrySend(frame)
	}
}

func marshal(event string, payload any) (Frame, bool) {
	b, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("module", "ws.hub").Str("event", event).Msg("marshal event")
		return nil, false
	}
	return b, true
}
