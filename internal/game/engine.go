package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

// Options tune the engine's timing and limits. Zero values fall back to the
// reference behavior.
type Options struct {
	TurnDuration time.Duration // writing-phase countdown, default 90s
	TickInterval time.Duration // timer-update cadence, default 1s
	MinPlayers   int           // minimum roster to start, default 3
}

func (o *Options) fill() {
	if o.TurnDuration == 0 {
		o.TurnDuration = 90 * time.Second
	}
	if o.TickInterval == 0 {
		o.TickInterval = time.Second
	}
	if o.MinPlayers == 0 {
		o.MinPlayers = 3
	}
}

// Engine exposes the room operations the transport handlers invoke. It
// enforces every room invariant and drives the registry, role assigner and
// turn scheduler. One engine serves all rooms; rooms never block each other.
type Engine struct {
	reg   *Registry
	bc    Broadcaster
	sched *scheduler
	list  Listing

	minPlayers int

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewEngine(reg *Registry, bc Broadcaster, list Listing, opts Options) *Engine {
	opts.fill()
	e := &Engine{
		reg:        reg,
		bc:         bc,
		sched:      newScheduler(bc, opts.TurnDuration, opts.TickInterval),
		list:       list,
		minPlayers: opts.MinPlayers,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	reg.onEvicted = func(meta domain.Room) {
		if !meta.Private {
			e.record("room-deleted", func(ctx context.Context) error {
				return e.list.RoomDeleted(ctx, meta.ID)
			})
			e.bc.ToAll(EventGamesUpdated, struct{}{})
		}
	}
	return e
}

// CreatedRoom is what the creator gets back: the full id is the lookup key,
// the join code only exists for private rooms.
type CreatedRoom struct {
	ID       domain.RoomID `json:"gameId"`
	ShortID  string        `json:"displayId"`
	JoinCode string        `json:"gameCode,omitempty"`
}

func (e *Engine) CreateRoom(creatorID, name string, totalPlayers, impostors int, private bool) (CreatedRoom, error) {
	if totalPlayers <= 0 || impostors <= 0 || impostors >= totalPlayers {
		return CreatedRoom{}, ErrInvalidParameters
	}

	meta := domain.Room{
		ID:           domain.RoomID(uuid.NewString()),
		Name:         name,
		CreatorID:    creatorID,
		TotalPlayers: totalPlayers,
		Impostors:    impostors,
		Private:      private,
	}
	if private {
		meta.JoinCode = e.joinCode()
	}
	e.reg.add(newRoom(meta))

	log.Info().Str("module", "game.engine").Str("room", string(meta.ID)).
		Str("creator", creatorID).Int("players", totalPlayers).
		Int("impostors", impostors).Bool("private", private).Msg("room created")

	if !private {
		e.record("room-created", func(ctx context.Context) error {
			return e.list.RoomCreated(ctx, meta)
		})
		e.bc.ToAll(EventGamesUpdated, struct{}{})
	}
	return CreatedRoom{ID: meta.ID, ShortID: meta.ID.Short(), JoinCode: meta.JoinCode}, nil
}

func (e *Engine) JoinRoom(roomID domain.RoomID, playerID, playerName, joinCode, avatar string) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return ErrRoomNotFound
	}
	if r.meta.Private && joinCode != r.meta.JoinCode {
		return ErrIncorrectCode
	}
	if r.phase != domain.PhaseWaiting {
		return ErrGameAlreadyStarted
	}
	if len(r.players) >= r.meta.TotalPlayers {
		return ErrRoomFull
	}
	if r.hasName(playerName) {
		return ErrNameTaken
	}
	p, err := domain.NewPlayer(playerID, playerName, avatar)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	e.reg.cancelEviction(r)
	r.players = append(r.players, p)
	e.bc.Subscribe(roomID, playerID)
	e.bc.ToPlayer(playerID, EventJoinedOK, JoinedPayload{GameID: string(roomID)})
	e.bc.ToRoom(roomID, EventPlayerJoined, r.rosterPayload())

	log.Info().Str("module", "game.engine").Str("room", string(roomID)).
		Str("player", playerName).Int("count", len(r.players)).Msg("player joined")

	if !r.meta.Private {
		count := len(r.players)
		e.record("player-count", func(ctx context.Context) error {
			return e.list.UpdatePlayerCount(ctx, roomID, count)
		})
		e.bc.ToAll(EventGamesUpdated, struct{}{})
	}
	return nil
}

// WatchRoom subscribes a connection to a room's events without occupying a
// player slot. The watcher immediately receives the current roster.
func (e *Engine) WatchRoom(roomID domain.RoomID, watcherID string) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return ErrRoomNotFound
	}
	e.bc.Subscribe(roomID, watcherID)
	e.bc.ToPlayer(watcherID, EventPlayerJoined, r.rosterPayload())
	return nil
}

func (e *Engine) StartGame(roomID domain.RoomID, requesterID string) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return ErrRoomNotFound
	}
	if requesterID != r.meta.CreatorID {
		return ErrNotRoomCreator
	}
	if r.phase != domain.PhaseWaiting {
		return ErrGameAlreadyStarted
	}
	if len(r.players) < e.minPlayers {
		return ErrNotEnoughPlayers
	}

	n := len(r.players)
	e.rngMu.Lock()
	roles := AssignRoles(n, r.meta.Impostors, e.rng)
	word := PickWord(e.rng)
	start := e.rng.Intn(n)
	e.rngMu.Unlock()

	for i, p := range r.players {
		p.Role = roles[i]
		if roles[i] == domain.RoleInnocent {
			p.Word = word
		} else {
			p.Word = ""
		}
	}
	r.word = word
	r.phase = domain.PhaseInProgress
	r.currentTurn = start

	roster := r.roster()
	for i, p := range r.players {
		payload := GameStartedPayload{
			Role:         p.Role.String(),
			PlayerIndex:  i,
			AllPlayers:   roster,
			CurrentTurn:  start,
			TotalPlayers: r.meta.TotalPlayers,
		}
		if p.Role == domain.RoleInnocent {
			w := p.Word
			payload.Word = &w
		}
		e.bc.ToPlayer(p.ID, EventGameStarted, payload)
	}

	log.Info().Str("module", "game.engine").Str("room", string(roomID)).
		Int("players", n).Int("impostors", r.meta.Impostors).
		Int("start_turn", start).Msg("game started")

	if !r.meta.Private {
		e.record("status", func(ctx context.Context) error {
			return e.list.UpdateStatus(ctx, roomID, domain.PhaseInProgress.String())
		})
		e.bc.ToAll(EventGamesUpdated, struct{}{})
	}

	e.sched.startTurn(r)
	return nil
}

// SubmitWord is valid only for the player at currentTurn. Anything else is
// silently ignored to tolerate the race with a just-expired turn.
func (e *Engine) SubmitWord(roomID domain.RoomID, playerID, word string) {
	r, ok := e.reg.get(roomID)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone || r.phase != domain.PhaseInProgress || r.wordSubmitted {
		return
	}
	if r.currentTurn >= len(r.players) || r.players[r.currentTurn].ID != playerID {
		return
	}

	r.wordSubmitted = true
	acting := r.players[r.currentTurn]
	e.bc.ToRoom(roomID, EventWordSubmitted, WordSubmittedPayload{
		PlayerIndex: r.currentTurn,
		PlayerName:  acting.Name,
		Word:        word,
	})
	log.Debug().Str("module", "game.engine").Str("room", string(roomID)).
		Str("player", acting.Name).Msg("word submitted")
	e.sched.advanceTurn(r)
}

// SendMessage appends a chat line and broadcasts it. Ignored when the sender
// is not a member or the game is not running.
func (e *Engine) SendMessage(roomID domain.RoomID, playerID, text string) {
	r, ok := e.reg.get(roomID)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone || r.phase != domain.PhaseInProgress {
		return
	}
	_, sender := r.playerByID(playerID)
	if sender == nil {
		return
	}
	msg := domain.Message{Sender: sender.Name, Text: text, SentAt: time.Now()}
	r.chat = append(r.chat, msg)
	e.bc.ToRoom(roomID, EventNewMessage, NewMessagePayload{
		PlayerName: msg.Sender,
		Message:    msg.Text,
		Timestamp:  msg.SentAt,
	})
}

// ResetGame returns the room to the waiting phase, clearing every role and
// word and cancelling any pending turn timers. The roster is untouched.
func (e *Engine) ResetGame(roomID domain.RoomID, requesterID string) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return ErrRoomNotFound
	}
	if requesterID != r.meta.CreatorID {
		return ErrNotRoomCreator
	}

	e.sched.cancelTurn(r)
	r.phase = domain.PhaseWaiting
	r.word = ""
	r.wordSubmitted = false
	r.currentTurn = 0
	for _, p := range r.players {
		p.Role = domain.RoleUnassigned
		p.Word = ""
	}
	e.bc.ToRoom(roomID, EventGameReset, struct{}{})
	log.Info().Str("module", "game.engine").Str("room", string(roomID)).Msg("game reset")

	if !r.meta.Private {
		e.record("status", func(ctx context.Context) error {
			return e.list.UpdateStatus(ctx, roomID, domain.PhaseWaiting.String())
		})
		e.bc.ToAll(EventGamesUpdated, struct{}{})
	}
	return nil
}

// LeaveRoom removes the player, usually on disconnect. An empty roster hands
// the room to the registry's eviction policy. A departing player mid-turn
// does not force an advance; the running timeout decides.
func (e *Engine) LeaveRoom(roomID domain.RoomID, playerID string) {
	r, ok := e.reg.get(roomID)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, p := r.playerByID(playerID)
	if p == nil {
		e.bc.Unsubscribe(roomID, playerID)
		return
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	r.clampTurn()
	e.bc.Unsubscribe(roomID, playerID)

	if p.PeerID != "" {
		e.bc.ToRoom(roomID, EventPeerLeft, PeerPayload{PeerID: p.PeerID, PlayerName: p.Name})
	}
	e.bc.ToRoom(roomID, EventPlayerLeft, PlayerLeftPayload{
		PlayerName:   p.Name,
		Players:      r.roster(),
		CurrentCount: len(r.players),
		TotalCount:   r.meta.TotalPlayers,
	})
	log.Info().Str("module", "game.engine").Str("room", string(roomID)).
		Str("player", p.Name).Int("remaining", len(r.players)).Msg("player left")

	if !r.meta.Private {
		count := len(r.players)
		e.record("player-count", func(ctx context.Context) error {
			return e.list.UpdatePlayerCount(ctx, roomID, count)
		})
		e.bc.ToAll(EventGamesUpdated, struct{}{})
	}

	if r.phase == domain.PhaseInProgress && len(r.players) < 2 {
		e.sched.cancelTurn(r)
	}
	if len(r.players) == 0 {
		e.reg.scheduleEviction(r)
	}
}

// RegisterPeer stores a voice-peer identifier on the player and announces it.
// The engine relays identifiers only; media never passes through here.
func (e *Engine) RegisterPeer(roomID domain.RoomID, playerID, peerID string) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, p := r.playerByID(playerID)
	if p == nil {
		return ErrNotMember
	}
	p.PeerID = peerID
	e.bc.ToRoom(roomID, EventNewPeer, PeerPayload{PeerID: peerID, PlayerName: p.Name})
	return nil
}

// ListPeers answers a snapshot of every registered voice peer in the room.
func (e *Engine) ListPeers(roomID domain.RoomID) ([]PeerPayload, error) {
	r, ok := e.reg.get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	peers := make([]PeerPayload, 0, len(r.players))
	for _, p := range r.players {
		if p.PeerID != "" {
			peers = append(peers, PeerPayload{PeerID: p.PeerID, PlayerName: p.Name})
		}
	}
	return peers, nil
}

func (e *Engine) SetMuted(roomID domain.RoomID, playerID string, muted bool) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, p := r.playerByID(playerID)
	if p == nil {
		return ErrNotMember
	}
	p.Muted = muted
	e.bc.ToRoom(roomID, EventMuteStatus, MuteStatusPayload{PlayerName: p.Name, IsMuted: muted})
	return nil
}

// RoomInfo is the REST snapshot of one room.
func (e *Engine) RoomInfo(roomID domain.RoomID) (RoomInfo, error) {
	r, ok := e.reg.get(roomID)
	if !ok {
		return RoomInfo{}, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return RoomInfo{}, ErrRoomNotFound
	}
	return r.info(), nil
}

// PublicRooms lists public rooms still in the waiting phase.
func (e *Engine) PublicRooms() []RoomSummary {
	return e.reg.publicWaiting()
}

// DeleteRoom removes a room explicitly, cancelling its timers first.
func (e *Engine) DeleteRoom(roomID domain.RoomID) error {
	r, ok := e.reg.get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	e.sched.cancelTurn(r)
	e.reg.cancelEviction(r)
	r.gone = true
	meta := r.meta
	r.mu.Unlock()

	e.reg.delete(roomID)
	if !meta.Private {
		e.record("room-deleted", func(ctx context.Context) error {
			return e.list.RoomDeleted(ctx, meta.ID)
		})
		e.bc.ToAll(EventGamesUpdated, struct{}{})
	}
	return nil
}

// joinCode generates the 4-digit code gating a private room.
func (e *Engine) joinCode() string {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return strconv.Itoa(1000 + e.rng.Intn(9000))
}

// record runs one listing update in the background. Failures are logged and
// otherwise ignored; the engine never depends on the collaborator.
func (e *Engine) record(op string, f func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := f(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("module", "game.engine").Str("op", op).Msg("listing update failed")
		}
	}()
}
