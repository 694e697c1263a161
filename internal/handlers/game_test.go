// internal/handlers/game_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/auth"
	"github.com/jason-s-yu/memoria/internal/game"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*GameServer, *httptest.Server) {
	t.Helper()
	require.NoError(t, auth.Init())

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gs := NewGameServer(logger, nil)
	gs.NewScheduler = func() game.Scheduler {
		return game.NewManualScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	}

	r := chi.NewRouter()
	r.Post("/game/create", CreateGameHandler(gs))
	r.Get("/game/ws/{id}", GameWSHandler(logger, gs))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return gs, srv
}

func createGame(t *testing.T, srv *httptest.Server, body string, cookie string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/game/create", bytes.NewBufferString(body))
	require.NoError(t, err)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatalf("no %s cookie issued", auth.CookieName)
	return ""
}

// TestCreateGame checks that /game/create deals a table owned by the new guest.
func TestCreateGame(t *testing.T) {
	gs, srv := newTestServer(t)

	resp, out := createGame(t, srv, `{"mode":3,"cardCount":18,"rules":{"forceSmartOpponent":true}}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	gameID, err := uuid.Parse(out["game_id"].(string))
	require.NoError(t, err)
	g, ok := gs.GameStore.GetGame(gameID)
	require.True(t, ok)

	userID, err := auth.AuthenticateJWT(strings.TrimPrefix(cookie, auth.CookieName+"="))
	require.NoError(t, err)
	assert.Equal(t, userID, g.OwnerID)
	assert.Equal(t, models.ModeCPU, g.Mode)
	assert.Equal(t, 18, g.CardCount)
	assert.Equal(t, models.DifficultyMedium, g.Difficulty)
	assert.True(t, g.Rules.ForceSmartOpponent)
	assert.Nil(t, g.Oracle)
}

func TestCreateGameDefaultsToTwelveCards(t *testing.T) {
	gs, srv := newTestServer(t)
	resp, out := createGame(t, srv, `{"mode":1}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	g, ok := gs.GameStore.GetGame(uuid.MustParse(out["game_id"].(string)))
	require.True(t, ok)
	assert.Equal(t, 12, g.CardCount)
}

func TestCreateGameRejectsBadRequests(t *testing.T) {
	gs, srv := newTestServer(t)

	for _, body := range []string{
		`{"mode":1,"cardCount":10}`,
		`{"mode":9,"cardCount":12}`,
		`{"cardCount":12}`,
		`{"mode":2,"cardCount":12,"rules":{"mismatchDelayMs":"slow"}}`,
		`not json`,
	} {
		resp, out := createGame(t, srv, body, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.NotEmpty(t, out["error"], body)
	}
	assert.Zero(t, gs.GameStore.Len())
}

func TestCreateGameReusesGuestCookie(t *testing.T) {
	gs, srv := newTestServer(t)
	owner := uuid.New()
	token, err := auth.CreateGuestJWT(owner)
	require.NoError(t, err)

	resp, _ := createGame(t, srv, `{"mode":2}`, auth.CookieName+"="+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies(), "a valid cookie is not replaced")
	assert.Len(t, gs.GameStore.GamesOwnedBy(owner), 1)
}

func dialGame(ctx context.Context, srv *httptest.Server, gameID, cookie string) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/ws/" + gameID
	return websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{"game"},
		HTTPHeader:   http.Header{"Cookie": []string{cookie}},
	})
}

// readUntil reads events until one of type want arrives.
func readUntil(t *testing.T, ctx context.Context, c *websocket.Conn, want string) map[string]interface{} {
	t.Helper()
	for {
		_, data, err := c.Read(ctx)
		require.NoError(t, err)
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &ev))
		if ev["type"] == want {
			return ev
		}
	}
}

func TestGameWebSocketFlow(t *testing.T) {
	_, srv := newTestServer(t)
	resp, out := createGame(t, srv, `{"mode":2,"cardCount":12}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := dialGame(ctx, srv, out["game_id"].(string), cookie)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	sync := readUntil(t, ctx, c, string(game.EventPrivateSyncState))
	state := sync["state"].(map[string]interface{})
	assert.Equal(t, out["game_id"], state["game_id"])
	assert.Len(t, state["board"], 12)

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"action_flip","index":4}`)))
	ev := readUntil(t, ctx, c, string(game.EventCardStatus))
	assert.EqualValues(t, 4, ev["index"])
	assert.Equal(t, "flipped", ev["status"])
	assert.NotEmpty(t, ev["icon"])

	snd := readUntil(t, ctx, c, string(game.EventSound))
	assert.Equal(t, "flip", snd["sound"])

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"ping"}`)))
	readUntil(t, ctx, c, "pong")

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"action_flip"}`)))
	errEv := readUntil(t, ctx, c, "error")
	assert.Contains(t, errEv["message"], "index")

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"action_snap"}`)))
	readUntil(t, ctx, c, "error")
}

func TestGameWebSocketRejectsStrangers(t *testing.T) {
	_, srv := newTestServer(t)
	resp, out := createGame(t, srv, `{"mode":1}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stranger, err := auth.CreateGuestJWT(uuid.New())
	require.NoError(t, err)
	_, wsResp, err := dialGame(ctx, srv, out["game_id"].(string), auth.CookieName+"="+stranger)
	require.Error(t, err)
	require.NotNil(t, wsResp)
	assert.Equal(t, http.StatusForbidden, wsResp.StatusCode)

	_, wsResp, err = dialGame(ctx, srv, out["game_id"].(string), "")
	require.Error(t, err)
	require.NotNil(t, wsResp)
	assert.Equal(t, http.StatusUnauthorized, wsResp.StatusCode)

	_, wsResp, err = dialGame(ctx, srv, uuid.NewString(), sessionCookie(t, resp))
	require.Error(t, err)
	require.NotNil(t, wsResp)
	assert.Equal(t, http.StatusNotFound, wsResp.StatusCode)
}

func TestCreateGameReplacesPreviousTable(t *testing.T) {
	gs, srv := newTestServer(t)
	owner := uuid.New()
	token, err := auth.CreateGuestJWT(owner)
	require.NoError(t, err)
	cookie := auth.CookieName + "=" + token

	_, first := createGame(t, srv, `{"mode":2}`, cookie)
	_, second := createGame(t, srv, `{"mode":1}`, cookie)

	_, ok := gs.GameStore.GetGame(uuid.MustParse(first["game_id"].(string)))
	assert.False(t, ok, "the owner's previous table is dropped")
	owned := gs.GameStore.GamesOwnedBy(owner)
	require.Len(t, owned, 1)
	assert.Equal(t, second["game_id"], owned[0].ID.String())
	assert.Equal(t, 1, gs.GameStore.Len())
}

func TestReapIdleRemovesAbandonedTables(t *testing.T) {
	gs, srv := newTestServer(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	idle, err := gs.CreateGame(uuid.New(), models.ModeTimedSolo, 12, nil)
	require.NoError(t, err)

	// a table with a client attached is never reaped
	resp, out := createGame(t, srv, `{"mode":2}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := dialGame(ctx, srv, out["game_id"].(string), sessionCookie(t, resp))
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")
	readUntil(t, ctx, c, string(game.EventPrivateSyncState))

	assert.Zero(t, gs.ReapIdle(created.Add(5*time.Minute), 10*time.Minute))
	assert.Equal(t, 2, gs.GameStore.Len())

	assert.Equal(t, 1, gs.ReapIdle(created.Add(11*time.Minute), 10*time.Minute))
	_, ok := gs.GameStore.GetGame(idle.ID)
	assert.False(t, ok)
	_, ok = gs.GameStore.GetGame(uuid.MustParse(out["game_id"].(string)))
	assert.True(t, ok)
}

func TestFinishedGameRemovedAfterClientLeaves(t *testing.T) {
	gs, srv := newTestServer(t)
	owner := uuid.New()
	token, err := auth.CreateGuestJWT(owner)
	require.NoError(t, err)

	g, err := gs.CreateGame(owner, models.ModeHotseat, 12, nil)
	require.NoError(t, err)
	require.NoError(t, g.StartWithDeck([]string{"A", "B", "C", "D", "E", "F", "A", "B", "C", "D", "E", "F"}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := dialGame(ctx, srv, g.ID.String(), auth.CookieName+"="+token)
	require.NoError(t, err)
	readUntil(t, ctx, c, string(game.EventPrivateSyncState))

	for i := 0; i < 6; i++ {
		for _, idx := range []int{i, i + 6} {
			msg := []byte(`{"type":"action_flip","index":` + strconv.Itoa(idx) + `}`)
			require.NoError(t, c.Write(ctx, websocket.MessageText, msg))
		}
	}
	end := readUntil(t, ctx, c, string(game.EventGameEnd))
	assert.NotNil(t, end["summary"])
	_, ok := gs.GameStore.GetGame(g.ID)
	assert.True(t, ok, "the table stays while its client is still looking at the result")

	c.Close(websocket.StatusNormalClosure, "")
	assert.Eventually(t, func() bool {
		_, ok := gs.GameStore.GetGame(g.ID)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStopActionRemovesTable(t *testing.T) {
	gs, srv := newTestServer(t)
	resp, out := createGame(t, srv, `{"mode":3}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	gameID := uuid.MustParse(out["game_id"].(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := dialGame(ctx, srv, gameID.String(), sessionCookie(t, resp))
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")
	readUntil(t, ctx, c, string(game.EventPrivateSyncState))

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"action_stop"}`)))
	assert.Eventually(t, func() bool {
		_, ok := gs.GameStore.GetGame(gameID)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	_, _, err = dialGame(ctx, srv, gameID.String(), sessionCookie(t, resp))
	assert.Error(t, err, "a stopped table cannot be rejoined")
}
