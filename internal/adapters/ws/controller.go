package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/game"
)

// Controller owns the websocket endpoint: it upgrades connections, runs the
// read/write pumps and translates inbound frames into engine calls.
type Controller struct {
	Engine   *game.Engine
	Hub      *Hub
	Sessions *Sessions

	readLimit  int64
	pingPeriod time.Duration
}

func NewController(engine *game.Engine, hub *Hub, sessions *Sessions, readLimit int64, pingPeriod time.Duration) *Controller {
	return &Controller{
		Engine:     engine,
		Hub:        hub,
		Sessions:   sessions,
		readLimit:  readLimit,
		pingPeriod: pingPeriod,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades a client connection. The client token set by the HTTP
// middleware is the connection's identity for the rest of its life.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := c.GetString("client_token")
	log.Info().Str("module", "ws").Str("sid", sid).Msg("new WS connection")

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}

	conn := newConn(sid, sock)
	ctl.Hub.register(conn)
	ctl.Sessions.Bind(sid)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, sid, conn)
		ctl.disconnect(sid)
	}()
}

// disconnect is the single "connection closed" hook: it runs exactly once
// per socket, after the read pump returns.
func (ctl *Controller) disconnect(sid string) {
	if roomID, ok := ctl.Sessions.RoomOf(sid); ok {
		ctl.Engine.LeaveRoom(roomID, sid)
	}
	ctl.Hub.unregister(sid)
	ctl.Sessions.Unbind(sid)
	log.Info().Str("module", "ws").Str("sid", sid).Msg("connection closed")
}

func (ctl *Controller) writePump(ctx context.Context, c *Conn) {
	// Closing the socket here unblocks the read pump, so a write-side
	// failure still ends in the disconnect hook.
	defer c.Close()
	ping := time.NewTicker(ctl.pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := c.sock.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.sock.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump set deadline")
				return
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, sid string, c *Conn) {
	defer c.Close()
	c.sock.SetReadLimit(ctl.readLimit)
	// A peer that never answers a ping must not hold ReadMessage forever:
	// the deadline is armed before the first read and refreshed per pong.
	if err := c.sock.SetReadDeadline(time.Now().Add(ctl.pingPeriod * 2)); err != nil {
		return
	}
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(ctl.pingPeriod * 2))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.sock.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Str("module", "ws").Str("sid", sid).Msg("readPump read error")
				return
			}
			ctl.dispatch(sid, c, data)
		}
	}
}
