package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
	"github.com/hectorjsiilva/impostor-game/internal/game"
)

type GameHandler struct {
	Engine *game.Engine
}

type createGameRequest struct {
	GameName      string `json:"gameName" binding:"required"`
	TotalPlayers  int    `json:"totalPlayers" binding:"required"`
	ImpostorCount int    `json:"impostorCount" binding:"required"`
	IsPublic      bool   `json:"isPublic"`
}

type createGameResponse struct {
	GameID   string `json:"gameId"`
	Link     string `json:"link"`
	GameCode string `json:"gameCode,omitempty"`
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	token := c.GetString("client_token")

	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing parameters"})
		return
	}

	created, err := h.Engine.CreateRoom(token, req.GameName, req.TotalPlayers, req.ImpostorCount, !req.IsPublic)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	c.JSON(http.StatusOK, createGameResponse{
		GameID:   string(created.ID),
		Link:     fmt.Sprintf("%s://%s/game/%s", scheme, c.Request.Host, created.ID),
		GameCode: created.JoinCode,
	})
}

func (h *GameHandler) PublicGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.PublicRooms())
}

func (h *GameHandler) GameInfo(c *gin.Context) {
	info, err := h.Engine.RoomInfo(domain.RoomID(c.Param("gameId")))
	if err != nil {
		if errors.Is(err, game.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown error"})
		return
	}
	c.JSON(http.StatusOK, info)
}
