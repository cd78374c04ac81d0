package entity

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe/internal/apperror"
)

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

func (that Mark) IsValid() bool {
	return that == X || that == O
}

// Opponent returns the other mark; Empty stays Empty.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (that Difficulty) IsValid() bool {
	switch that {
	case Easy, Medium, Hard:
		return true
	default:
		return false
	}
}

func ParseDifficulty(value string) (Difficulty, error) {
	difficulty := Difficulty(value)
	if !difficulty.IsValid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}

	return difficulty, nil
}

type MiniGameType string

const (
	Reaction      MiniGameType = "reaction"
	Memory        MiniGameType = "memory"
	SpeedRunner   MiniGameType = "speed-runner"
	QuickMath     MiniGameType = "quick-math"
	TargetShooter MiniGameType = "target-shooter"
)

// MiniGameTypes returns every known mini-game in a stable order.
func MiniGameTypes() []MiniGameType {
	return []MiniGameType{Reaction, Memory, SpeedRunner, QuickMath, TargetShooter}
}

func (that MiniGameType) IsValid() bool {
	switch that {
	case Reaction, Memory, SpeedRunner, QuickMath, TargetShooter:
		return true
	default:
		return false
	}
}

func ParseMiniGameType(value string) (MiniGameType, error) {
	gameType := MiniGameType(value)
	if !gameType.IsValid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMiniGame, value)
	}

	return gameType, nil
}

type Status string

const (
	StatusMenu     Status = "menu"
	StatusPlaying  Status = "playing"
	StatusMiniGame Status = "mini-game"
	StatusGameOver Status = "game-over"
)
