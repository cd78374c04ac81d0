package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
	"github.com/rocketscienceinc/supertictactoe/internal/minigame"
)

type settingsDep interface {
	Settings() entity.Settings
}

// GameOptions describes a game requested by the local human player.
type GameOptions struct {
	Mark       entity.Mark
	Opponent   entity.PlayerKind
	Difficulty entity.Difficulty
}

// GameManager serialises access to the orchestrator so it can sit behind a
// concurrent front end, and runs the mini-game for every fight it starts.
type GameManager struct {
	logger   *slog.Logger
	settings settingsDep
	launcher *minigame.Launcher

	mu           sync.Mutex
	orchestrator *Orchestrator
	generation   uint64
}

func NewGameManager(logger *slog.Logger, orchestrator *Orchestrator, launcher *minigame.Launcher, settings settingsDep) *GameManager {
	return &GameManager{
		logger:       logger.With("component", "game_manager"),
		settings:     settings,
		launcher:     launcher,
		orchestrator: orchestrator,
	}
}

func (that *GameManager) State() entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.orchestrator.Snapshot()
}

// Subscribe registers a listener on the orchestrator. Listeners run while the
// manager is locked and must not call back into it.
func (that *GameManager) Subscribe(listener Listener) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	unsubscribe := that.orchestrator.Subscribe(listener)

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		unsubscribe()
	}
}

// StartGame seats the human with the requested mark against the requested
// opponent. X always moves first. An empty difficulty means the saved setting.
func (that *GameManager) StartGame(ctx context.Context, options GameOptions) (entity.Session, error) {
	players, err := that.roster(options)
	if err != nil {
		return that.State(), err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.StartGame(ctx, players)
	if err == nil {
		that.abort()
	}

	return session, err
}

func (that *GameManager) Restart(ctx context.Context) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.Restart(ctx)
	if err == nil {
		that.abort()
	}

	return session, err
}

func (that *GameManager) Reset(ctx context.Context) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.ResetState(ctx)
	if err == nil {
		that.abort()
	}

	return session, err
}

func (that *GameManager) SelectSquare(ctx context.Context, playerID string, index int) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.orchestrator.SelectSquare(ctx, playerID, index)
}

func (that *GameManager) StartMiniGame(ctx context.Context, gameType entity.MiniGameType, index int) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.StartMiniGame(ctx, gameType, index)
	if err != nil {
		return session, err
	}

	that.launch(ctx, session)

	return session, nil
}

func (that *GameManager) SelectSquareWithMiniGame(
	ctx context.Context,
	playerID string,
	index int,
	gameType entity.MiniGameType,
) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.SelectSquareWithMiniGame(ctx, playerID, index, gameType)
	if err != nil {
		return session, err
	}

	that.launch(ctx, session)

	return session, nil
}

func (that *GameManager) PlayAITurn(ctx context.Context) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.PlayAITurn(ctx)
	if err != nil {
		return session, err
	}

	that.launch(ctx, session)

	return session, nil
}

// EndMiniGame applies a result reported by the client and stops the deadline
// of the running mini-game.
func (that *GameManager) EndMiniGame(ctx context.Context, winnerID string) (entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.orchestrator.EndMiniGame(ctx, winnerID)
	if err == nil {
		that.abort()
	}

	return session, err
}

// launch runs the mini-game session just entered. Callers hold the lock.
func (that *GameManager) launch(ctx context.Context, session entity.Session) {
	that.generation++

	// the launched game outlives the request that started it
	if _, err := that.launcher.Launch(context.WithoutCancel(ctx), &launchedGame{
		manager:    that,
		generation: that.generation,
	}, session); err != nil {
		that.logger.Error("failed to launch mini-game", "type", session.ActiveMiniGame, "error", err)
	}
}

// abort drops whatever mini-game is running. Callers hold the lock.
func (that *GameManager) abort() {
	that.generation++
	that.launcher.Abort()
}

func (that *GameManager) roster(options GameOptions) ([]*entity.Player, error) {
	if !options.Mark.IsValid() {
		return nil, fmt.Errorf("%w: mark %q", apperror.ErrInvalidPlayers, options.Mark)
	}

	human := entity.NewHumanPlayer(options.Mark)

	var opponent *entity.Player
	switch options.Opponent {
	case entity.HumanKind:
		opponent = entity.NewHumanPlayer(options.Mark.Opponent())
	case entity.AIKind, "":
		difficulty := options.Difficulty
		if difficulty == "" {
			difficulty = that.settings.Settings().AIDifficulty
		}

		opponent = entity.NewAIPlayer(options.Mark.Opponent(), difficulty)
	default:
		return nil, fmt.Errorf("%w: opponent %q", apperror.ErrInvalidPlayers, options.Opponent)
	}

	if human.Mark == entity.X {
		return []*entity.Player{human, opponent}, nil
	}

	return []*entity.Player{opponent, human}, nil
}

// launchedGame ends the mini-game it was launched for, and nothing newer.
type launchedGame struct {
	manager    *GameManager
	generation uint64
}

func (that *launchedGame) EndMiniGame(ctx context.Context, winnerID string) (entity.Session, error) {
	that.manager.mu.Lock()
	defer that.manager.mu.Unlock()

	if that.manager.generation != that.generation {
		return that.manager.orchestrator.Snapshot(), fmt.Errorf("%w: mini-game already settled", apperror.ErrWrongStatus)
	}

	that.manager.generation++

	return that.manager.orchestrator.EndMiniGame(ctx, winnerID)
}
