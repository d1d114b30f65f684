package http

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hectorjsiilva/impostor-game/internal/adapters/ws"
	"github.com/hectorjsiilva/impostor-game/internal/config"
	"github.com/hectorjsiilva/impostor-game/internal/game"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware gives every browser a stable identity cookie. The
// token doubles as the websocket connection id and the caller identity the
// engine sees; the engine itself never authenticates.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, engine *game.Engine, ctl *ws.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ImpostorSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &GameHandler{Engine: engine}
	api := r.Group("/api")
	api.POST("/games/create", h.CreateGame)
	api.GET("/games/public", h.PublicGames)
	api.GET("/game/:gameId", h.GameInfo)

	api.GET("/ws/game", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws endpoint hit")
		ctl.HandleWS(ctx, c)
	})

	return r
}
