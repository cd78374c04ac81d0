package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/minigame"
	"github.com/rocketscienceinc/supertictactoe/internal/strategy"
	"github.com/rocketscienceinc/supertictactoe/internal/usecase"
)

type gameUseCase interface {
	State() entity.Session
	StartGame(ctx context.Context, options usecase.GameOptions) (entity.Session, error)
	SelectSquare(ctx context.Context, playerID string, index int) (entity.Session, error)
	SelectSquareWithMiniGame(ctx context.Context, playerID string, index int, gameType entity.MiniGameType) (entity.Session, error)
	StartMiniGame(ctx context.Context, gameType entity.MiniGameType, index int) (entity.Session, error)
	EndMiniGame(ctx context.Context, winnerID string) (entity.Session, error)
	PlayAITurn(ctx context.Context) (entity.Session, error)
	Restart(ctx context.Context) (entity.Session, error)
	Reset(ctx context.Context) (entity.Session, error)
}

type profileService interface {
	Settings() entity.Settings
	UpdateSettings(ctx context.Context, patch entity.SettingsPatch) entity.Settings
	Statistics() entity.Statistics
	ResetStatistics(ctx context.Context) entity.Statistics
	ClearAll(ctx context.Context)
}

type startRequest struct {
	Mark       entity.Mark       `json:"mark"`
	Opponent   entity.PlayerKind `json:"opponent"`
	Difficulty entity.Difficulty `json:"difficulty"`
}

type selectRequest struct {
	PlayerID string              `json:"player_id"`
	Square   *int                `json:"square"`
	MiniGame entity.MiniGameType `json:"mini_game,omitempty"`
}

type miniGameStartRequest struct {
	Type   entity.MiniGameType `json:"type"`
	Square *int                `json:"square"`
}

type miniGameEndRequest struct {
	WinnerID string `json:"winner_id"`
}

type miniGameInfo struct {
	Type       entity.MiniGameType `json:"type"`
	DurationMS int64               `json:"duration_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger  *slog.Logger
	game    gameUseCase
	profile profileService
}

// NewRouter wires every REST endpoint. socket, when not nil, is served on /ws.
func NewRouter(logger *slog.Logger, game gameUseCase, profile profileService, socket http.Handler) *mux.Router {
	that := &handlers{
		logger:  logger.With("component", "rest"),
		game:    game,
		profile: profile,
	}

	router := mux.NewRouter()
	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	if socket != nil {
		router.Handle("/ws", socket)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", that.getState).Methods(http.MethodGet)

	api.HandleFunc("/game/start", that.startGame).Methods(http.MethodPost)
	api.HandleFunc("/game/select", that.selectSquare).Methods(http.MethodPost)
	api.HandleFunc("/game/minigame/start", that.startMiniGame).Methods(http.MethodPost)
	api.HandleFunc("/game/minigame/end", that.endMiniGame).Methods(http.MethodPost)
	api.HandleFunc("/game/ai-turn", that.playAITurn).Methods(http.MethodPost)
	api.HandleFunc("/game/restart", that.restart).Methods(http.MethodPost)
	api.HandleFunc("/game/reset", that.reset).Methods(http.MethodPost)

	api.HandleFunc("/minigames", that.listMiniGames).Methods(http.MethodGet)
	api.HandleFunc("/difficulty/{difficulty}/profile", that.difficultyProfile).Methods(http.MethodGet)

	api.HandleFunc("/settings", that.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", that.patchSettings).Methods(http.MethodPatch)
	api.HandleFunc("/statistics", that.getStatistics).Methods(http.MethodGet)
	api.HandleFunc("/statistics", that.resetStatistics).Methods(http.MethodDelete)
	api.HandleFunc("/profile", that.clearProfile).Methods(http.MethodDelete)

	return router
}

func (that *handlers) getState(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.State())
}

func (that *handlers) startGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	session, err := that.game.StartGame(r.Context(), usecase.GameOptions{
		Mark:       req.Mark,
		Opponent:   req.Opponent,
		Difficulty: req.Difficulty,
	})
	that.writeSession(w, session, err)
}

func (that *handlers) selectSquare(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	if req.Square == nil {
		that.writeError(w, fmt.Errorf("%w: square is required", apperror.ErrInvalidArgument))
		return
	}

	if req.MiniGame != "" {
		session, err := that.game.SelectSquareWithMiniGame(r.Context(), req.PlayerID, *req.Square, req.MiniGame)
		that.writeSession(w, session, err)
		return
	}

	session, err := that.game.SelectSquare(r.Context(), req.PlayerID, *req.Square)
	that.writeSession(w, session, err)
}

func (that *handlers) startMiniGame(w http.ResponseWriter, r *http.Request) {
	var req miniGameStartRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	if req.Square == nil {
		that.writeError(w, fmt.Errorf("%w: square is required", apperror.ErrInvalidArgument))
		return
	}

	session, err := that.game.StartMiniGame(r.Context(), req.Type, *req.Square)
	that.writeSession(w, session, err)
}

func (that *handlers) endMiniGame(w http.ResponseWriter, r *http.Request) {
	var req miniGameEndRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	session, err := that.game.EndMiniGame(r.Context(), req.WinnerID)
	that.writeSession(w, session, err)
}

func (that *handlers) playAITurn(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.PlayAITurn(r.Context())
	that.writeSession(w, session, err)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.Restart(r.Context())
	that.writeSession(w, session, err)
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	session, err := that.game.Reset(r.Context())
	that.writeSession(w, session, err)
}

func (that *handlers) listMiniGames(w http.ResponseWriter, _ *http.Request) {
	games := make([]miniGameInfo, 0, len(entity.MiniGameTypes()))
	for _, gameType := range entity.MiniGameTypes() {
		games = append(games, miniGameInfo{
			Type:       gameType,
			DurationMS: minigame.DefaultDuration(gameType).Milliseconds(),
		})
	}

	that.writeJSON(w, http.StatusOK, games)
}

func (that *handlers) difficultyProfile(w http.ResponseWriter, r *http.Request) {
	difficulty, err := entity.ParseDifficulty(mux.Vars(r)["difficulty"])
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, strategy.ProfileFor(difficulty))
}

func (that *handlers) getSettings(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.profile.Settings())
}

func (that *handlers) patchSettings(w http.ResponseWriter, r *http.Request) {
	var patch entity.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		that.writeError(w, err)
		return
	}

	if patch.AIDifficulty != nil && !patch.AIDifficulty.IsValid() {
		that.writeError(w, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, *patch.AIDifficulty))
		return
	}

	that.writeJSON(w, http.StatusOK, that.profile.UpdateSettings(r.Context(), patch))
}

func (that *handlers) getStatistics(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.profile.Statistics())
}

func (that *handlers) resetStatistics(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.profile.ResetStatistics(r.Context()))
}

// clearProfile forgets settings and statistics alike.
func (that *handlers) clearProfile(w http.ResponseWriter, r *http.Request) {
	that.profile.ClearAll(r.Context())

	that.writeJSON(w, http.StatusOK, entity.Profile{
		Settings:   that.profile.Settings(),
		Statistics: that.profile.Statistics(),
	})
}

func (that *handlers) writeSession(w http.ResponseWriter, session entity.Session, err error) {
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrIllegalState):
		status = http.StatusConflict
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return fmt.Errorf("%w: request body is required", apperror.ErrInvalidArgument)
	}

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", apperror.ErrInvalidArgument, err)
	}

	return nil
}
