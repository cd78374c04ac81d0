package minigame

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

type orchestratorDep interface {
	EndMiniGame(ctx context.Context, winnerID string) (entity.Session, error)
}

// Launcher builds the mini-game a session asks for and reports its outcome
// back to the orchestrator exactly once.
type Launcher struct {
	logger   *slog.Logger
	registry *Registry
	seed     int64

	mu     sync.Mutex
	active MiniGame
	launch uint64
}

// NewLauncher creates a launcher. seed 0 gives every mini-game a time based seed.
func NewLauncher(logger *slog.Logger, registry *Registry, seed int64) *Launcher {
	return &Launcher{
		logger:   logger.With("component", "minigame"),
		registry: registry,
		seed:     seed,
	}
}

// Launch starts the mini-game of session and wires its callbacks to orchestrator.
// Any previously running game is ended first.
func (that *Launcher) Launch(ctx context.Context, orchestrator orchestratorDep, session entity.Session) (MiniGame, error) {
	log := that.logger.With("method", "Launch")

	if session.Status != entity.StatusMiniGame {
		return nil, fmt.Errorf("%w: no mini-game to launch in %s", apperror.ErrWrongStatus, session.Status)
	}

	game, err := that.registry.New(session.ActiveMiniGame)
	if err != nil {
		return nil, err
	}

	difficulty := entity.Medium
	if opponent, ok := session.AI(); ok {
		difficulty = opponent.Difficulty
	}

	that.mu.Lock()
	that.launch++
	seed := that.seed + int64(that.launch)
	if that.seed == 0 {
		seed = time.Now().UnixNano()
	}
	that.mu.Unlock()

	if err = game.Initialize(Config{
		Players:    session.Players,
		Duration:   DefaultDuration(session.ActiveMiniGame),
		Difficulty: difficulty,
		Seed:       seed,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", session.ActiveMiniGame, err)
	}

	var once sync.Once
	finish := func(winnerID string) {
		once.Do(func() {
			that.release(game)

			if _, endErr := orchestrator.EndMiniGame(ctx, winnerID); endErr != nil {
				log.Error("failed to end mini-game", "type", session.ActiveMiniGame, "error", endErr)
			}
		})
	}

	game.OnWin(finish)
	game.OnDraw(func() { finish("") })

	that.mu.Lock()
	previous := that.active
	that.active = game
	that.mu.Unlock()

	if previous != nil {
		previous.End()
	}

	game.Start()
	log.Debug("mini-game started", "type", session.ActiveMiniGame, "duration", game.Duration(), "difficulty", difficulty)

	return game, nil
}

// Active returns the running mini-game, if any.
func (that *Launcher) Active() (MiniGame, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.active, that.active != nil
}

// Abort ends the active mini-game without reporting a result.
func (that *Launcher) Abort() {
	that.mu.Lock()
	game := that.active
	that.active = nil
	that.mu.Unlock()

	if game != nil {
		game.End()
	}
}

func (that *Launcher) release(game MiniGame) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.active == game {
		that.active = nil
	}
}
