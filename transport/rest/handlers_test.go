package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/minigame"
	"github.com/rocketscienceinc/supertictactoe/internal/repository"
	"github.com/rocketscienceinc/supertictactoe/internal/service"
	"github.com/rocketscienceinc/supertictactoe/internal/strategy"
	"github.com/rocketscienceinc/supertictactoe/internal/usecase"
	"github.com/rocketscienceinc/supertictactoe/testing/suite"
)

func newTestRouter(t *testing.T) (*mux.Router, *usecase.GameManager) {
	t.Helper()

	logger := suite.NewLogger()
	profile := service.NewProfileService(logger, repository.NewMemoryProfileRepository())
	manager := usecase.NewGameManager(
		logger,
		usecase.NewOrchestrator(logger, profile, strategy.NewRand(1)),
		minigame.NewLauncher(logger, minigame.NewDefaultRegistry(), 1),
		profile,
	)
	t.Cleanup(func() { _, _ = manager.Reset(context.Background()) })

	return NewRouter(logger, manager, profile, nil), manager
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) entity.Session {
	t.Helper()

	var session entity.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	return session
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	// Given: a fresh server
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.StatusMenu, decodeSession(t, rec).Status)

	// When: a game against a hard AI starts
	rec = do(t, router, http.MethodPost, "/api/game/start", `{"mark":"X","opponent":"ai","difficulty":"hard"}`)

	// Then: the human is up
	require.Equal(t, http.StatusOK, rec.Code)
	session := decodeSession(t, rec)
	assert.Equal(t, entity.StatusPlaying, session.Status)
	human := session.Players[0]
	assert.Equal(t, human.ID, session.CurrentPlayerID)

	// When: the human selects the center and starts a reaction game
	rec = do(t, router, http.MethodPost, "/api/game/select", `{"player_id":"`+human.ID+`","square":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, *decodeSession(t, rec).SelectedSquare)

	rec = do(t, router, http.MethodPost, "/api/game/minigame/start", `{"type":"reaction","square":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	session = decodeSession(t, rec)
	assert.Equal(t, entity.StatusMiniGame, session.Status)
	assert.Equal(t, entity.Reaction, session.ActiveMiniGame)

	// And: reports winning it
	rec = do(t, router, http.MethodPost, "/api/game/minigame/end", `{"winner_id":"`+human.ID+`"}`)

	// Then: X holds the center and the AI plays next
	require.Equal(t, http.StatusOK, rec.Code)
	session = decodeSession(t, rec)
	assert.Equal(t, entity.X, session.Board[4])
	assert.Equal(t, session.Players[1].ID, session.CurrentPlayerID)

	rec = do(t, router, http.MethodPost, "/api/game/ai-turn", "")
	require.Equal(t, http.StatusOK, rec.Code)
	session = decodeSession(t, rec)
	assert.Equal(t, entity.StatusMiniGame, session.Status)
	require.NotNil(t, session.PendingSquare)

	// And: statistics saw one game and one mini-game
	rec = do(t, router, http.MethodGet, "/api/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats entity.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, entity.Counter{Played: 1}, stats.ByDifficulty[entity.Hard])
	assert.Equal(t, entity.Counter{Played: 1, Won: 1}, stats.MiniGameStats[entity.Reaction])

	// When: resetting
	rec = do(t, router, http.MethodPost, "/api/game/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.StatusMenu, decodeSession(t, rec).Status)
}

func TestErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"select from the menu", http.MethodPost, "/api/game/select", `{"player_id":"p","square":0}`, http.StatusConflict},
		{"restart from the menu", http.MethodPost, "/api/game/restart", "", http.StatusConflict},
		{"end with nothing running", http.MethodPost, "/api/game/minigame/end", `{"winner_id":""}`, http.StatusConflict},
		{"missing body", http.MethodPost, "/api/game/start", "", http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/game/start", `{"mark":`, http.StatusBadRequest},
		{"bad mark", http.MethodPost, "/api/game/start", `{"mark":"Q"}`, http.StatusBadRequest},
		{"missing square", http.MethodPost, "/api/game/select", `{"player_id":"p"}`, http.StatusBadRequest},
		{"unknown difficulty profile", http.MethodGet, "/api/difficulty/legend/profile", "", http.StatusBadRequest},
		{"bad settings difficulty", http.MethodPatch, "/api/settings", `{"aiDifficulty":"legend"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCatalog(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("Mini-games with durations", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/minigames", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var games []miniGameInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
		require.Len(t, games, 5)
		assert.Equal(t, miniGameInfo{Type: entity.Reaction, DurationMS: 5000}, games[0])
		assert.Equal(t, miniGameInfo{Type: entity.Memory, DurationMS: 45000}, games[1])
	})

	t.Run("Difficulty profile", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/difficulty/easy/profile", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var profile strategy.Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, strategy.ProfileFor(entity.Easy), profile)
	})
}

func TestSettingsAndStatistics(t *testing.T) {
	router, manager := newTestRouter(t)

	// Given: defaults
	rec := do(t, router, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"aiDifficulty":"medium","soundEnabled":true,"musicEnabled":true}`, rec.Body.String())

	// When: patching two fields
	rec = do(t, router, http.MethodPatch, "/api/settings", `{"aiDifficulty":"easy","musicEnabled":false}`)

	// Then: only they change
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"aiDifficulty":"easy","soundEnabled":true,"musicEnabled":false}`, rec.Body.String())

	// And: a game without difficulty uses the saved one
	rec = do(t, router, http.MethodPost, "/api/game/start", `{"mark":"O"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.Easy, manager.State().Players[0].Difficulty)

	// When: statistics are reset
	rec = do(t, router, http.MethodDelete, "/api/statistics", "")

	// Then: all counters are back to zero
	require.Equal(t, http.StatusOK, rec.Code)
	var stats entity.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, entity.NewStatistics(), stats)

	// When: the whole profile is cleared
	rec = do(t, router, http.MethodDelete, "/api/profile", "")

	// Then: settings are back to defaults as well
	require.Equal(t, http.StatusOK, rec.Code)
	var profile entity.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, entity.DefaultProfile(), profile)
}
