package game

import (
	"time"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// Wire names of every event the engine emits. Clients dispatch on these.
const (
	EventPlayerJoined  = "player-joined"
	EventJoinedOK      = "joined-successfully"
	EventGameStarted   = "game-started"
	EventNextTurn      = "next-turn"
	EventTimerUpdate   = "timer-update"
	EventTimeoutAlert  = "timeout-alert"
	EventWordSubmitted = "word-submitted"
	EventNewMessage    = "new-message"
	EventGameReset     = "game-reset"
	EventPlayerLeft    = "player-left"
	EventNewPeer       = "new-peer"
	EventPeersList     = "peers-list"
	EventMuteStatus    = "mute-status-update"
	EventPeerLeft      = "peer-left"
	EventGamesUpdated  = "games-updated"
	EventError         = "error"
)

// PlayerSummary is the roster view shared with every client. Roles and words
// never appear here.
type PlayerSummary struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type RosterPayload struct {
	Players      []PlayerSummary `json:"players"`
	CurrentCount int             `json:"currentCount"`
	TotalCount   int             `json:"totalCount"`
}

type JoinedPayload struct {
	GameID string `json:"gameId"`
}

// GameStartedPayload is player-scoped: each player sees only their own role,
// and Word is null for impostors.
type GameStartedPayload struct {
	Role         string          `json:"role"`
	Word         *string         `json:"word"`
	PlayerIndex  int             `json:"playerIndex"`
	AllPlayers   []PlayerSummary `json:"allPlayers"`
	CurrentTurn  int             `json:"currentTurn"`
	TotalPlayers int             `json:"totalPlayers"`
}

type NextTurnPayload struct {
	CurrentTurn   int    `json:"currentTurn"`
	PlayerName    string `json:"playerName"`
	Phase         string `json:"phase"`
	TimeRemaining int    `json:"timeRemaining"`
}

type TimerUpdatePayload struct {
	TimeRemaining int `json:"timeRemaining"`
}

type TimeoutAlertPayload struct {
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}

type WordSubmittedPayload struct {
	PlayerIndex int    `json:"playerIndex"`
	PlayerName  string `json:"playerName"`
	Word        string `json:"word"`
}

type NewMessagePayload struct {
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

type PlayerLeftPayload struct {
	PlayerName   string          `json:"playerName"`
	Players      []PlayerSummary `json:"players"`
	CurrentCount int             `json:"currentCount"`
	TotalCount   int             `json:"totalCount"`
}

type PeerPayload struct {
	PeerID     string `json:"peerId"`
	PlayerName string `json:"playerName"`
}

type PeersListPayload struct {
	Peers []PeerPayload `json:"peers"`
}

type MuteStatusPayload struct {
	PlayerName string `json:"playerName"`
	IsMuted    bool   `json:"isMuted"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// RoomSummary is the public listing row handed to the lobby screen.
type RoomSummary struct {
	ID             domain.RoomID `json:"id"`
	Name           string        `json:"name"`
	CurrentPlayers int           `json:"currentPlayers"`
	TotalPlayers   int           `json:"totalPlayers"`
	ImpostorCount  int           `json:"impostorCount"`
}

// RoomInfo is the REST snapshot of a single room.
type RoomInfo struct {
	ID             domain.RoomID `json:"id"`
	Name           string        `json:"name"`
	TotalPlayers   int           `json:"totalPlayers"`
	CurrentPlayers int           `json:"currentPlayers"`
	Started        bool          `json:"started"`
	Private        bool          `json:"isPrivate"`
}
