package minigame

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

// grace is added on top of the nominal duration before a silent game is called a draw.
const grace = 2 * time.Second

// Timed is a mini-game simulated by the client. The server only enforces the
// deadline: when no result arrives in time the game ends in a draw.
type Timed struct {
	gameType entity.MiniGameType

	mu         sync.Mutex
	config     Config
	running    bool
	timer      *time.Timer
	onWin      func(winnerID string)
	onDraw     func()
	afterFunc  func(d time.Duration, f func()) *time.Timer
	registered map[string]struct{}
}

func NewTimed(gameType entity.MiniGameType) *Timed {
	return &Timed{
		gameType:  gameType,
		afterFunc: time.AfterFunc,
		config: Config{
			Duration:   DefaultDuration(gameType),
			Difficulty: entity.Medium,
		},
	}
}

func (that *Timed) Type() entity.MiniGameType {
	return that.gameType
}

func (that *Timed) Initialize(config Config) error {
	if len(config.Players) != 2 {
		return fmt.Errorf("%w: mini-game needs 2 players, got %d", apperror.ErrInvalidPlayers, len(config.Players))
	}

	if config.Difficulty != "" && !config.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, config.Difficulty)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if config.Duration <= 0 {
		config.Duration = DefaultDuration(that.gameType)
	}

	if config.Difficulty == "" {
		config.Difficulty = that.config.Difficulty
	}

	that.config = config
	that.registered = make(map[string]struct{}, len(config.Players))
	for _, player := range config.Players {
		that.registered[player.ID] = struct{}{}
	}

	return nil
}

func (that *Timed) Start() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.running {
		return
	}

	that.running = true
	that.timer = that.afterFunc(that.config.Duration+grace, that.expire)
}

func (that *Timed) End() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stop()
}

func (that *Timed) OnWin(callback func(winnerID string)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onWin = callback
}

func (that *Timed) OnDraw(callback func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onDraw = callback
}

func (that *Timed) IsRunning() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.running
}

func (that *Timed) Duration() time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.config.Duration
}

func (that *Timed) SetDifficulty(difficulty entity.Difficulty) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.config.Difficulty = difficulty
}

func (that *Timed) Difficulty() entity.Difficulty {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.config.Difficulty
}

// Report ends the game with winnerID, or in a draw when winnerID is empty.
func (that *Timed) Report(winnerID string) error {
	that.mu.Lock()

	if !that.running {
		that.mu.Unlock()
		return fmt.Errorf("%w: mini-game is not running", apperror.ErrWrongStatus)
	}

	if winnerID != "" {
		if _, ok := that.registered[winnerID]; !ok {
			that.mu.Unlock()
			return fmt.Errorf("%w: %s", apperror.ErrUnknownPlayer, winnerID)
		}
	}

	that.stop()
	onWin, onDraw := that.onWin, that.onDraw
	that.mu.Unlock()

	// callbacks run unlocked: they usually call back into the orchestrator
	if winnerID == "" {
		if onDraw != nil {
			onDraw()
		}
		return nil
	}

	if onWin != nil {
		onWin(winnerID)
	}

	return nil
}

// expire fails harmlessly when a result was reported first.
func (that *Timed) expire() {
	_ = that.Report("")
}

func (that *Timed) stop() {
	that.running = false

	if that.timer != nil {
		that.timer.Stop()
		that.timer = nil
	}
}
