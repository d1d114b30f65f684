package ws

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
	"github.com/hectorjsiilva/impostor-game/internal/game"
)

func (ctl *Controller) dispatch(sid string, c *Conn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("bad json")
		return
	}

	switch env.Type {
	case "join-game":
		ctl.handleJoin(sid, c, data)
	case "join-as-admin":
		ctl.handleJoinAsAdmin(sid, c, data)
	case "start-game":
		ctl.handleStart(sid, c, data)
	case "submit-word":
		ctl.handleSubmitWord(sid, data)
	case "send-message":
		ctl.handleSendMessage(sid, c, data)
	case "reset-game":
		ctl.handleReset(sid, c, data)
	case "leave-game":
		ctl.handleLeave(sid)
	case "register-peer":
		ctl.handleRegisterPeer(sid, c, data)
	case "get-peers":
		ctl.handleGetPeers(sid, c, data)
	case "mute-status":
		ctl.handleMuteStatus(sid, c, data)
	case "ping":
		ctl.sendJSON(c, "pong", nil)
	default:
		log.Warn().Str("module", "ws").Str("type", env.Type).Msg("unknown message type")
	}
}

func (ctl *Controller) handleJoin(sid string, c *Conn, data []byte) {
	type joinPayload struct {
		GameID     string `json:"gameId"`
		PlayerName string `json:"playerName"`
		GameCode   string `json:"gameCode,omitempty"`
		Avatar     string `json:"avatar,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad payload")
		return
	}

	roomID := domain.RoomID(p.GameID)
	// One room per connection: a join while still seated elsewhere vacates
	// the old seat first, otherwise disconnect would only clean up the
	// latest room and leave a ghost holding the other one open.
	if prev, ok := ctl.Sessions.RoomOf(sid); ok && prev != roomID {
		ctl.Engine.LeaveRoom(prev, sid)
		ctl.Sessions.ClearRoom(sid)
	}
	if err := ctl.Engine.JoinRoom(roomID, sid, p.PlayerName, p.GameCode, p.Avatar); err != nil {
		ctl.sendError(c, err.Error())
		return
	}
	ctl.Sessions.SetRoom(sid, roomID)
}

// handleJoinAsAdmin lets the creator monitor a room without taking a slot.
func (ctl *Controller) handleJoinAsAdmin(sid string, c *Conn, data []byte) {
	type adminPayload struct {
		GameID string `json:"gameId"`
	}
	var p adminPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad payload")
		return
	}
	if err := ctl.Engine.WatchRoom(domain.RoomID(p.GameID), sid); err != nil {
		ctl.sendError(c, err.Error())
	}
}

func (ctl *Controller) handleStart(sid string, c *Conn, data []byte) {
	type startPayload struct {
		GameID string `json:"gameId"`
	}
	var p startPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad payload")
		return
	}
	if err := ctl.Engine.StartGame(domain.RoomID(p.GameID), sid); err != nil {
		ctl.sendError(c, err.Error())
	}
}

func (ctl *Controller) handleSubmitWord(sid string, data []byte) {
	type submitPayload struct {
		GameID string `json:"gameId"`
		Word   string `json:"word"`
	}
	var p submitPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	// Out-of-turn submissions are a tolerated race, not an error.
	ctl.Engine.SubmitWord(domain.RoomID(p.GameID), sid, p.Word)
}

func (ctl *Controller) handleSendMessage(sid string, c *Conn, data []byte) {
	type messagePayload struct {
		GameID  string `json:"gameId"`
		Message string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Message == "" {
		return
	}
	if !ctl.Sessions.AllowChat(sid) {
		ctl.sendError(c, "too many messages")
		return
	}
	ctl.Engine.SendMessage(domain.RoomID(p.GameID), sid, p.Message)
}

func (ctl *Controller) handleReset(sid string, c *Conn, data []byte) {
	type resetPayload struct {
		GameID string `json:"gameId"`
	}
	var p resetPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad payload")
		return
	}
	if err := ctl.Engine.ResetGame(domain.RoomID(p.GameID), sid); err != nil {
		ctl.sendError(c, err.Error())
	}
}

func (ctl *Controller) handleLeave(sid string) {
	if roomID, ok := ctl.Sessions.RoomOf(sid); ok {
		ctl.Engine.LeaveRoom(roomID, sid)
		ctl.Sessions.ClearRoom(sid)
	}
}

func (ctl *Controller) handleRegisterPeer(sid string, c *Conn, data []byte) {
	type peerPayload struct {
		GameID string `json:"gameId"`
		PeerID string `json:"peerId"`
	}
	var p peerPayload
	if err := json.Unmarshal(data, &p); err != nil || p.PeerID == "" {
		ctl.sendError(c, "bad payload")
		return
	}
	if err := ctl.Engine.RegisterPeer(domain.RoomID(p.GameID), sid, p.PeerID); err != nil {
		ctl.sendError(c, err.Error())
	}
}

func (ctl *Controller) handleGetPeers(sid string, c *Conn, data []byte) {
	type peersPayload struct {
		GameID string `json:"gameId"`
	}
	var p peersPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad payload")
		return
	}
	peers, err := ctl.Engine.ListPeers(domain.RoomID(p.GameID))
	if err != nil {
		ctl.sendError(c, err.Error())
		return
	}
	ctl.sendJSON(c, game.EventPeersList, game.PeersListPayload{Peers: peers})
}

func (ctl *Controller) handleMuteStatus(sid string, c *Conn, data []byte) {
	type mutePayload struct {
		GameID  string `json:"gameId"`
		IsMuted bool   `json:"isMuted"`
	}
	var p mutePayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad payload")
		return
	}
	if err := ctl.Engine.SetMuted(domain.RoomID(p.GameID), sid, p.IsMuted); err != nil {
		ctl.sendError(c, err.Error())
	}
}

// sendError answers the requesting connection only; the rest of the room
// never learns about a rejected operation.
func (ctl *Controller) sendError(c *Conn, msg string) {
	ctl.sendJSON(c, game.EventError, game.ErrorPayload{Message: msg})
}

func (ctl *Controller) sendJSON(c *Conn, event string, payload any) {
	b, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil && !errors.Is(err, ErrBackpressure) {
		log.Debug().Err(err).Str("module", "ws").Msg("sendJSON dropped")
	}
}
