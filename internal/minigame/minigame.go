package minigame

import (
	"time"

	"github.com/rocketscienceinc/supertictactoe/internal/entity"
)

// MiniGame is a short contest deciding who claims a square.
//
// Exactly one of the OnWin or OnDraw callbacks fires per run, and only while the
// game is running. End stops a running game without reporting anything.
type MiniGame interface {
	Initialize(config Config) error
	Start()
	End()
	OnWin(callback func(winnerID string))
	OnDraw(callback func())
	IsRunning() bool
	Duration() time.Duration
	SetDifficulty(difficulty entity.Difficulty)
}

type Config struct {
	Players    []entity.Player
	Duration   time.Duration
	Difficulty entity.Difficulty
	Seed       int64
}

var defaultDurations = map[entity.MiniGameType]time.Duration{
	entity.Reaction:      5 * time.Second,
	entity.Memory:        45 * time.Second,
	entity.SpeedRunner:   30 * time.Second,
	entity.QuickMath:     30 * time.Second,
	entity.TargetShooter: 30 * time.Second,
}

// DefaultDuration is how long a mini-game of the given type runs unless configured otherwise.
func DefaultDuration(gameType entity.MiniGameType) time.Duration {
	if duration, ok := defaultDurations[gameType]; ok {
		return duration
	}

	return 30 * time.Second
}
