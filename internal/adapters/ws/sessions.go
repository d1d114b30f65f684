package ws

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

type sessionEntry struct {
	RoomID domain.RoomID
	Chat   *rate.Limiter
}

// Sessions maps a connection's client token to the room it joined, so a
// closing socket can be routed to LeaveRoom. It also owns the per-connection
// chat limiter.
type Sessions struct {
	mu        sync.RWMutex
	entries   map[string]*sessionEntry
	chatLimit rate.Limit
	chatBurst int
}

func NewSessions(chatLimit float64, chatBurst int) *Sessions {
	return &Sessions{
		entries:   make(map[string]*sessionEntry),
		chatLimit: rate.Limit(chatLimit),
		chatBurst: chatBurst,
	}
}

func (s *Sessions) Bind(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = &sessionEntry{Chat: rate.NewLimiter(s.chatLimit, s.chatBurst)}
}

func (s *Sessions) Unbind(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
}

func (s *Sessions) SetRoom(sid string, roomID domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sid]; ok {
		e.RoomID = roomID
	}
}

func (s *Sessions) ClearRoom(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sid]; ok {
		e.RoomID = ""
	}
}

func (s *Sessions) RoomOf(sid string) (domain.RoomID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[sid]
	if !ok || e.RoomID == "" {
		return "", false
	}
	return e.RoomID, true
}

// AllowChat reports whether the session may send another chat message now.
func (s *Sessions) AllowChat(sid string) bool {
	s.mu.RLock()
	e, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return e.Chat.Allow()
}
