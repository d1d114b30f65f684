package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
	"github.com/hectorjsiilva/impostor-game/internal/game"
)

// stubHub satisfies game.Broadcaster; REST tests never assert on events.
type stubHub struct{}

func (stubHub) ToRoom(domain.RoomID, string, any) {}
func (stubHub) ToPlayer(string, string, any)      {}
func (stubHub) ToAll(string, any)                 {}
func (stubHub) Subscribe(domain.RoomID, string)   {}
func (stubHub) Unsubscribe(domain.RoomID, string) {}

func newTestRouter(t *testing.T) (*gin.Engine, *game.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng := game.NewEngine(game.NewRegistry(time.Hour), stubHub{}, game.NopListing{}, game.Options{})

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("client_token", "tester") })
	h := &GameHandler{Engine: eng}
	r.POST("/api/games/create", h.CreateGame)
	r.GET("/api/games/public", h.PublicGames)
	r.GET("/api/game/:gameId", h.GameInfo)
	return r, eng
}

func TestCreateGame(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"gameName":"friday","totalPlayers":4,"impostorCount":1,"isPublic":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/games/create", strings.NewReader(body))
	req.Host = "game.test"
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		GameID   string `json:"gameId"`
		Link     string `json:"link"`
		GameCode string `json:"gameCode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.GameID)
	assert.Equal(t, "http://game.test/game/"+resp.GameID, resp.Link)
	assert.Empty(t, resp.GameCode, "public games carry no code")
}

func TestCreateGamePrivateReturnsCode(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"gameName":"secret","totalPlayers":4,"impostorCount":1,"isPublic":false}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/games/create", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["gameCode"], 4)
}

func TestCreateGameRejectsBadBody(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"gameName":"x"}`},
		{"not json", `nope`},
		{"impostors outnumber players", `{"gameName":"x","totalPlayers":2,"impostorCount":3,"isPublic":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/games/create", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPublicGames(t *testing.T) {
	r, eng := newTestRouter(t)

	_, err := eng.CreateRoom("tester", "lobby", 4, 1, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/games/public", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "lobby", rooms[0]["name"])
}

func TestGameInfo(t *testing.T) {
	r, eng := newTestRouter(t)

	created, err := eng.CreateRoom("tester", "room", 4, 1, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/game/"+string(created.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "room", info["name"])
	assert.Equal(t, false, info["started"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/game/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
